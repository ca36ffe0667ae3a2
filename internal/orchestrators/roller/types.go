package roller

import (
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/dice"
)

// RollInput defines the request for evaluating dice notation
type RollInput struct {
	UserID   string
	Notation string
}

// RollOutput defines the response for a dice roll
type RollOutput struct {
	RollID string
	Result *dice.RollResult
}

// AttackInput defines the request for an attack roll: a d20 against a
// target armor class, with a flat modifier. DamageNotation, when set,
// is rolled only on a hit.
type AttackInput struct {
	UserID         string
	Modifier       int
	TargetAC       int
	DamageNotation string
}

// AttackOutput defines the response for an attack roll. Damage is nil
// unless the attack hit and damage notation was given.
type AttackOutput struct {
	RollID       string
	Roll         int
	Modifier     int
	Total        int
	TargetAC     int
	Hit          bool
	CriticalHit  bool
	CriticalMiss bool
	Damage       *dice.RollResult
}
