// Package campaign provides the guild-scoped campaign state store.
// Everything lives in volatile memory; each guild is an isolated
// partition created lazily on first access.
package campaign

//go:generate mockgen -destination=mock/mock_repository.go -package=campaignmock github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/repositories/campaign Repository

import (
	"context"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/entities"
)

// Repository defines the storage interface for campaign state. Every
// operation is guild-scoped and atomic with respect to concurrent
// callers on the same guild; operations on different guilds never
// block one another.
type Repository interface {
	// Characters
	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)
	SetHP(ctx context.Context, input *SetHPInput) (*SetHPOutput, error)
	ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error)
	ApplyHeal(ctx context.Context, input *ApplyHealInput) (*ApplyHealOutput, error)

	// Initiative
	UpsertInitiative(ctx context.Context, input *UpsertInitiativeInput) (*UpsertInitiativeOutput, error)
	GetInitiativeOrder(ctx context.Context, input *GetInitiativeOrderInput) (*GetInitiativeOrderOutput, error)
	ClearInitiative(ctx context.Context, input *ClearInitiativeInput) (*ClearInitiativeOutput, error)

	// Quests
	UpsertQuest(ctx context.Context, input *UpsertQuestInput) (*UpsertQuestOutput, error)
	ListQuests(ctx context.Context, input *ListQuestsInput) (*ListQuestsOutput, error)

	// Inventory
	AddInventoryItem(ctx context.Context, input *AddInventoryItemInput) (*AddInventoryItemOutput, error)
	RemoveInventoryItem(ctx context.Context, input *RemoveInventoryItemInput) (*RemoveInventoryItemOutput, error)
	ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error)

	// Notes
	AppendNote(ctx context.Context, input *AppendNoteInput) (*AppendNoteOutput, error)
	ListNotes(ctx context.Context, input *ListNotesInput) (*ListNotesOutput, error)

	// Location
	SetLocation(ctx context.Context, input *SetLocationInput) (*SetLocationOutput, error)
	GetLocation(ctx context.Context, input *GetLocationInput) (*GetLocationOutput, error)

	// Session
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	ClearSessionVoice(ctx context.Context, input *ClearSessionVoiceInput) (*ClearSessionVoiceOutput, error)

	// Guild
	GetGuildStats(ctx context.Context, input *GetGuildStatsInput) (*GetGuildStatsOutput, error)
	ClearGuild(ctx context.Context, input *ClearGuildInput) (*ClearGuildOutput, error)
}

// AddCharacterInput defines the request for creating a character
type AddCharacterInput struct {
	GuildID string
	OwnerID string
	Name    string
	HP      int
}

// AddCharacterOutput defines the response for creating a character
type AddCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for retrieving a character
type GetCharacterInput struct {
	GuildID string
	Name    string
}

// GetCharacterOutput defines the response for retrieving a character
type GetCharacterOutput struct {
	Character *entities.Character
}

// ListCharactersInput defines the request for listing characters.
// OwnerID is optional; when set, only that user's characters return.
type ListCharactersInput struct {
	GuildID string
	OwnerID string
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	GuildID string
	Name    string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	Success bool
}

// SetHPInput defines the request for setting a character's HP directly
type SetHPInput struct {
	GuildID string
	Name    string
	HP      int
}

// SetHPOutput defines the response for setting a character's HP
type SetHPOutput struct {
	Character *entities.Character
}

// ApplyDamageInput defines the request for damaging a character
type ApplyDamageInput struct {
	GuildID string
	Name    string
	Amount  int
}

// ApplyDamageOutput reports the HP transition. Damage is the amount
// actually applied after clamping at zero.
type ApplyDamageOutput struct {
	Character  *entities.Character
	PreviousHP int
	Damage     int
}

// ApplyHealInput defines the request for healing a character
type ApplyHealInput struct {
	GuildID string
	Name    string
	Amount  int
}

// ApplyHealOutput reports the HP transition. Healing is the amount
// actually applied, which may be less than requested when capped by
// max HP.
type ApplyHealOutput struct {
	Character  *entities.Character
	PreviousHP int
	Healing    int
}

// UpsertInitiativeInput defines the request for adding a combatant.
// A case-insensitive name match replaces the prior entry.
type UpsertInitiativeInput struct {
	GuildID string
	Name    string
	Roll    int
}

// UpsertInitiativeOutput returns the full re-sorted order
type UpsertInitiativeOutput struct {
	Order []entities.InitiativeEntry
}

// GetInitiativeOrderInput defines the request for reading the turn order
type GetInitiativeOrderInput struct {
	GuildID string
}

// GetInitiativeOrderOutput returns a snapshot of the turn order,
// sorted by roll descending
type GetInitiativeOrderOutput struct {
	Order []entities.InitiativeEntry
}

// ClearInitiativeInput defines the request for clearing the turn order
type ClearInitiativeInput struct {
	GuildID string
}

// ClearInitiativeOutput reports how many entries were removed
type ClearInitiativeOutput struct {
	Removed int
}

// UpsertQuestInput defines the request for adding or updating a quest.
// A case-insensitive title match updates the existing quest in place.
type UpsertQuestInput struct {
	GuildID     string
	AuthorID    string
	Title       string
	Description string
	Status      entities.QuestStatus
}

// UpsertQuestOutput returns the stored quest and whether it was new
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

// AddInventoryItemInput defines the request for adding inventory.
// A case-insensitive name match accumulates quantity; the first
// stored description wins.
type AddInventoryItemInput struct {
	GuildID     string
	AddedBy     string
	Name        string
	Quantity    int
	Description string
}

// AddInventoryItemOutput returns the stored item after accumulation
type AddInventoryItemOutput struct {
	Item *entities.InventoryItem
}

// RemoveInventoryItemInput defines the request for removing inventory
type RemoveInventoryItemInput struct {
	GuildID  string
	Name     string
	Quantity int
}

// RemoveInventoryItemOutput reports the result; Item is nil when the
// stack was depleted and Deleted is true
type RemoveInventoryItemOutput struct {
	Item    *entities.InventoryItem
	Deleted bool
}

// ListInventoryInput defines the request for listing the party inventory
type ListInventoryInput struct {
	GuildID string
}

// ListInventoryOutput defines the response for listing the party inventory
type ListInventoryOutput struct {
	Items []*entities.InventoryItem
}

// AppendNoteInput defines the request for appending a campaign note
type AppendNoteInput struct {
	GuildID  string
	AuthorID string
	Title    string
	Content  string
}

// AppendNoteOutput returns the stored note with its sequential id
type AppendNoteOutput struct {
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

// SetLocationInput defines the request for setting the party location
type SetLocationInput struct {
	GuildID   string
	Name      string
	UpdatedBy string
}

// SetLocationOutput returns the stored location
type SetLocationOutput struct {
	Location *entities.Location
}

// GetLocationInput defines the request for reading the party location
type GetLocationInput struct {
	GuildID string
}

// GetLocationOutput defines the response for reading the party location
type GetLocationOutput struct {
	Location *entities.Location
}

// StartSessionInput defines the request for starting a session.
// VoiceChannelID is optional and opaque to the core.
type StartSessionInput struct {
	GuildID        string
	Name           string
	StartedBy      string
	VoiceChannelID string
}

// StartSessionOutput returns the stored session
type StartSessionOutput struct {
	Session *entities.Session
}

// GetSessionInput defines the request for reading the current session
type GetSessionInput struct {
	GuildID string
}

// GetSessionOutput defines the response for reading the current session
type GetSessionOutput struct {
	Session *entities.Session
}

// ClearSessionVoiceInput defines the request for detaching the voice
// channel from the current session
type ClearSessionVoiceInput struct {
	GuildID string
}

// ClearSessionVoiceOutput returns the session after the voice
// reference is cleared
type ClearSessionVoiceOutput struct {
	Session *entities.Session
}

// GetGuildStatsInput defines the request for guild statistics
type GetGuildStatsInput struct {
	GuildID string
}

// GetGuildStatsOutput defines the response for guild statistics
type GetGuildStatsOutput struct {
	Stats entities.GuildStats
}

// ClearGuildInput defines the request for dropping a guild partition
type ClearGuildInput struct {
	GuildID string
}

// ClearGuildOutput reports whether a partition existed to clear
type ClearGuildOutput struct {
	Cleared bool
}
