package combat

import (
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/entities"
)

// HealthState buckets a character's remaining HP for party status
// displays
type HealthState string

// Health states, from worst to best
const (
	HealthUnconscious HealthState = "unconscious"
	HealthCritical    HealthState = "critical"
	HealthWounded     HealthState = "wounded"
	HealthHealthy     HealthState = "healthy"
)

// AddCharacterInput defines the request for registering a character
type AddCharacterInput struct {
	GuildID string
	OwnerID string
	Name    string
	MaxHP   int
}

// AddCharacterOutput defines the response for registering a character
type AddCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for looking up a character
type GetCharacterInput struct {
	GuildID string
	Name    string
}

// GetCharacterOutput defines the response for looking up a character
type GetCharacterOutput struct {
	Character *entities.Character
}

// RemoveCharacterInput defines the request for removing a character
type RemoveCharacterInput struct {
	GuildID string
	Name    string
}

// RemoveCharacterOutput defines the response for removing a character
type RemoveCharacterOutput struct {
	Success bool
}

// SetHPInput defines the request for setting HP directly
type SetHPInput struct {
	GuildID string
	Name    string
	HP      int
}

// SetHPOutput defines the response for setting HP
type SetHPOutput struct {
	Character *entities.Character
}

// DealDamageInput defines the request for damaging a character.
// Amount is either a bare integer ("7") or dice notation ("2d6+1").
type DealDamageInput struct {
	GuildID string
	Name    string
	Amount  string
}

// DealDamageOutput reports the applied damage and how it was rolled.
// Details is empty when the amount was a bare integer.
type DealDamageOutput struct {
	Character  *entities.Character
	PreviousHP int
	Damage     int
	Details    string
}

// HealCharacterInput defines the request for healing a character.
// Amount is either a bare integer or dice notation.
type HealCharacterInput struct {
	GuildID string
	Name    string
	Amount  string
}

// HealCharacterOutput reports the healing actually applied, which may
// be less than rolled when capped by max HP
type HealCharacterOutput struct {
	Character  *entities.Character
	PreviousHP int
	Healing    int
	Details    string
}

// PartyStatusInput defines the request for the party health summary
type PartyStatusInput struct {
	GuildID string
}

// PartyMember pairs a character with its health bucket
type PartyMember struct {
	Character *entities.Character
	State     HealthState
}

// PartyStatusOutput defines the response for the party health summary
type PartyStatusOutput struct {
	Members []PartyMember
}

// AddInitiativeInput defines the request for adding a combatant to
// the turn order
type AddInitiativeInput struct {
	GuildID string
	Name    string
	Roll    int
}

// AddInitiativeOutput returns the re-sorted turn order
type AddInitiativeOutput struct {
	Order []entities.InitiativeEntry
}

// GetInitiativeInput defines the request for reading the turn order
type GetInitiativeInput struct {
	GuildID string
}

// GetInitiativeOutput defines the response for reading the turn order
type GetInitiativeOutput struct {
	Order []entities.InitiativeEntry
}

// ClearInitiativeInput defines the request for resetting the turn order
type ClearInitiativeInput struct {
	GuildID string
}

// ClearInitiativeOutput reports how many combatants were removed
type ClearInitiativeOutput struct {
	Removed int
}
