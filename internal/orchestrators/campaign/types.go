package campaign

import (
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/entities"
)

// UpsertQuestInput defines the request for adding or updating a quest
type UpsertQuestInput struct {
	GuildID     string
	AuthorID    string
	Title       string
	Description string
	Status      string
}

// UpsertQuestOutput returns the stored quest and whether it was newly
// created
type UpsertQuestOutput struct {
	Quest   *entities.Quest
	Created bool
}

// ListQuestsInput defines the request for listing quests
type ListQuestsInput struct {
	GuildID string
}

// ListQuestsOutput defines the response for listing quests
type ListQuestsOutput struct {
	Quests []*entities.Quest
}

// AddNoteInput defines the request for appending a campaign note
type AddNoteInput struct {
	GuildID  string
	AuthorID string
	Title    string
	Content  string
}

// AddNoteOutput returns the stored note
type AddNoteOutput struct {
	Note *entities.Note
}

// ListNotesInput defines the request for listing campaign notes
type ListNotesInput struct {
	GuildID string
}

// ListNotesOutput defines the response for listing campaign notes
type ListNotesOutput struct {
	Notes []*entities.Note
}

// AddItemInput defines the request for adding to the party inventory
type AddItemInput struct {
	GuildID     string
	AddedBy     string
	Name        string
	Quantity    int
	Description string
}

// AddItemOutput returns the item after quantity accumulation
type AddItemOutput struct {
	Item *entities.InventoryItem
}

// RemoveItemInput defines the request for removing from the inventory
type RemoveItemInput struct {
	GuildID  string
	Name     string
	Quantity int
}

// RemoveItemOutput reports the remaining stack, or Deleted when it
// was depleted
type RemoveItemOutput struct {
	Item    *entities.InventoryItem
	Deleted bool
}

// ListInventoryInput defines the request for listing the inventory
type ListInventoryInput struct {
	GuildID string
}

// ListInventoryOutput defines the response for listing the inventory
type ListInventoryOutput struct {
	Items []*entities.InventoryItem
}

// SetLocationInput defines the request for moving the party
type SetLocationInput struct {
	GuildID   string
	UpdatedBy string
	Name      string
}

// SetLocationOutput returns the stored location
type SetLocationOutput struct {
	Location *entities.Location
}

// GetLocationInput defines the request for the party's location
type GetLocationInput struct {
	GuildID string
}

// GetLocationOutput defines the response for the party's location
type GetLocationOutput struct {
	Location *entities.Location
}

// StartSessionInput defines the request for starting a play session
type StartSessionInput struct {
	GuildID        string
	StartedBy      string
	Name           string
	VoiceChannelID string
}

// StartSessionOutput returns the stored session
type StartSessionOutput struct {
	Session *entities.Session
}

// GetSessionInput defines the request for the current play session
type GetSessionInput struct {
	GuildID string
}

// GetSessionOutput defines the response for the current play session
type GetSessionOutput struct {
	Session *entities.Session
}

// EndSessionInput defines the request for ending the current session
type EndSessionInput struct {
	GuildID string
}

// EndSessionOutput returns the session as it was when ended
type EndSessionOutput struct {
	Session *entities.Session
}

// GuildStatsInput defines the request for guild statistics
type GuildStatsInput struct {
	GuildID string
}

// GuildStatsOutput defines the response for guild statistics
type GuildStatsOutput struct {
	Stats entities.GuildStats
}

// ResetGuildInput defines the request for wiping a guild's state
type ResetGuildInput struct {
	GuildID string
}

// ResetGuildOutput reports whether any state existed to wipe
type ResetGuildOutput struct {
	Cleared bool
}
