// Package entities defines the campaign domain types shared across the bot core
package entities

import "time"

// QuestStatus is the lifecycle state of a quest
type QuestStatus string

// Quest statuses
const (
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusFailed    QuestStatus = "failed"
	QuestStatusOnHold    QuestStatus = "on_hold"
)

// ValidQuestStatuses lists every accepted quest status value
func ValidQuestStatuses() []string {
	return []string{
		string(QuestStatusActive),
		string(QuestStatusCompleted),
		string(QuestStatusFailed),
		string(QuestStatusOnHold),
	}
}

// Character is a player character tracked for a guild.
// Name is unique within the guild, compared case-insensitively.
// HP is always clamped to [0, MaxHP].
type Character struct {
	Name      string
	HP        int
	MaxHP     int
	OwnerID   string
	CreatedAt time.Time
}

// InitiativeEntry is one position in a guild's combat turn order
type InitiativeEntry struct {
	Name string
	Roll int
}

// Quest is a campaign quest, keyed by case-insensitive title
type Quest struct {
	ID          int
	Title       string
	Description string
	Status      QuestStatus
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InventoryItem is a stack of items in the shared party inventory.
// Name is the case-insensitive natural key; Quantity never goes below 1.
type InventoryItem struct {
	Name        string
	Quantity    int
	Description string
	AddedBy     string
	AddedAt     time.Time
}

// Note is one entry in the append-only campaign log
type Note struct {
	ID        int
	Title     string
	Content   string
	AuthorID  string
	CreatedAt time.Time
}

// Location is the party's current location, a single slot per guild
type Location struct {
	Name      string
	UpdatedBy string
	UpdatedAt time.Time
}

// Session is the current play session for a guild.
// VoiceChannelID is an opaque reference owned by the Discord adapter;
// the core only stores and clears it.
type Session struct {
	Name           string
	StartedBy      string
	StartedAt      time.Time
	VoiceChannelID string
}

// GuildStats summarizes a guild's tracked state
type GuildStats struct {
	CharacterCount   int
	InitiativeCount  int
	ActiveInitiative bool
	QuestCount       int
	NoteCount        int
	InventoryCount   int
}
