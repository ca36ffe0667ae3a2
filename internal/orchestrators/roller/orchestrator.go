// Package roller implements the dice-rolling orchestrator. It parses
// and evaluates dice notation and runs attack rolls against a target
// armor class.
package roller

//go:generate mockgen -destination=mock/mock_service.go -package=rollermock github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/orchestrators/roller Service

import (
	"context"
	"log/slog"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/dice"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/pkg/idgen"
)

// Service defines the interface for dice operations
type Service interface {
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
	Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error)
}

// Config holds the dependencies for the roller orchestrator
type Config struct {
	Roller      dice.Roller
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
	idGen  idgen.Generator
}

// NewOrchestrator creates a new roller orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller: cfg.Roller,
		idGen:  cfg.IDGenerator,
	}, nil
}

// Roll evaluates dice notation like "2d6+3" or "4d6kh3" and returns
// the total along with per-group provenance
func (o *orchestrator) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	result, err := dice.Roll(input.Notation, o.roller)
	if err != nil {
		return nil, err
	}

	rollID := o.idGen.Generate()
	slog.InfoContext(ctx, "Evaluated dice roll",
		"roll_id", rollID,
		"user_id", input.UserID,
		"notation", result.Expression,
		"total", result.Total,
	)

	return &RollOutput{
		RollID: rollID,
		Result: result,
	}, nil
}

// Attack rolls a d20, applies the modifier, and compares against the
// target AC. A natural 20 always hits; a natural 1 always misses.
// When damage notation is given it is rolled only on a hit.
func (o *orchestrator) Attack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.TargetAC < 1 {
		return nil, errors.InvalidArgument("target AC must be at least 1")
	}

	// Validate damage notation before rolling the d20 so a typo does
	// not burn an attack roll
	var damageExpr *dice.Expression
	if input.DamageNotation != "" {
		expr, err := dice.Parse(input.DamageNotation)
		if err != nil {
			return nil, err
		}
		damageExpr = expr
	}

	roll := o.roller.Roll(20)
	total := roll + input.Modifier

	out := &AttackOutput{
		RollID:       o.idGen.Generate(),
		Roll:         roll,
		Modifier:     input.Modifier,
		Total:        total,
		TargetAC:     input.TargetAC,
		CriticalHit:  roll == 20,
		CriticalMiss: roll == 1,
	}
	out.Hit = out.CriticalHit || (!out.CriticalMiss && total >= input.TargetAC)

	if out.Hit && damageExpr != nil {
		damage, err := dice.Evaluate(damageExpr, o.roller)
		if err != nil {
			return nil, err
		}
		out.Damage = damage
	}

	slog.InfoContext(ctx, "Resolved attack roll",
		"roll_id", out.RollID,
		"user_id", input.UserID,
		"roll", roll,
		"total", total,
		"target_ac", input.TargetAC,
		"hit", out.Hit,
	)

	return out, nil
}
