// Package combat implements the combat orchestrator: character
// registry, HP tracking, and initiative order.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/orchestrators/combat Service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/dice"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/repositories/campaign"
)

// MaxCharacterHP bounds max HP at creation time
const MaxCharacterHP = 1000

// Service defines the interface for combat operations
type Service interface {
	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error)
	SetHP(ctx context.Context, input *SetHPInput) (*SetHPOutput, error)
	DealDamage(ctx context.Context, input *DealDamageInput) (*DealDamageOutput, error)
	HealCharacter(ctx context.Context, input *HealCharacterInput) (*HealCharacterOutput, error)
	PartyStatus(ctx context.Context, input *PartyStatusInput) (*PartyStatusOutput, error)

	AddInitiative(ctx context.Context, input *AddInitiativeInput) (*AddInitiativeOutput, error)
	GetInitiative(ctx context.Context, input *GetInitiativeInput) (*GetInitiativeOutput, error)
	ClearInitiative(ctx context.Context, input *ClearInitiativeInput) (*ClearInitiativeOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	CampaignRepo campaign.Repository
	Roller       dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CampaignRepo == nil {
		vb.RequiredField("CampaignRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	campaignRepo campaign.Repository
	roller       dice.Roller
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		campaignRepo: cfg.CampaignRepo,
		roller:       cfg.Roller,
	}, nil
}

// AddCharacter registers a character at full HP
func (o *orchestrator) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GuildID", input.GuildID, vb)
	errors.ValidateRequired("Name", input.Name, vb)
	errors.ValidateRange("MaxHP", input.MaxHP, 1, MaxCharacterHP, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.campaignRepo.AddCharacter(ctx, &campaign.AddCharacterInput{
		GuildID: input.GuildID,
		OwnerID: input.OwnerID,
		Name:    input.Name,
		HP:      input.MaxHP,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Added character",
		"guild_id", input.GuildID,
		"character", out.Character.Name,
		"max_hp", out.Character.MaxHP,
	)

	return &AddCharacterOutput{Character: out.Character}, nil
}

// GetCharacter looks up a character by name
func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.GetCharacter(ctx, &campaign.GetCharacterInput{
		GuildID: input.GuildID,
		Name:    input.Name,
	})
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: out.Character}, nil
}

// RemoveCharacter deletes a character from the guild
func (o *orchestrator) RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.DeleteCharacter(ctx, &campaign.DeleteCharacterInput{
		GuildID: input.GuildID,
		Name:    input.Name,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Removed character",
		"guild_id", input.GuildID,
		"character", input.Name,
	)

	return &RemoveCharacterOutput{Success: out.Success}, nil
}

// SetHP sets a character's HP directly; the store clamps to
// [0, max HP]
func (o *orchestrator) SetHP(ctx context.Context, input *SetHPInput) (*SetHPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.SetHP(ctx, &campaign.SetHPInput{
		GuildID: input.GuildID,
		Name:    input.Name,
		HP:      input.HP,
	})
	if err != nil {
		return nil, err
	}

	return &SetHPOutput{Character: out.Character}, nil
}

// resolveAmount turns "7" or "2d6+1" into a concrete value. A bare
// integer skips the dice evaluator entirely so negative checks stay
// in one place.
func (o *orchestrator) resolveAmount(amount string) (int, string, error) {
	if amount == "" {
		return 0, "", errors.InvalidArgument("amount is required")
	}

	if value, err := strconv.Atoi(amount); err == nil {
		if value < 1 {
			return 0, "", errors.InvalidArgument("amount must be at least 1")
		}
		return value, "", nil
	}

	result, err := dice.Roll(amount, o.roller)
	if err != nil {
		return 0, "", err
	}
	if result.Total < 0 {
		return 0, "", errors.FailedPreconditionf("roll %q came out negative", amount)
	}

	return result.Total, result.Details, nil
}

// DealDamage applies damage to a character. The amount may be dice
// notation; the roll and the HP update are reported together.
func (o *orchestrator) DealDamage(ctx context.Context, input *DealDamageInput) (*DealDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	amount, details, err := o.resolveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	out, err := o.campaignRepo.ApplyDamage(ctx, &campaign.ApplyDamageInput{
		GuildID: input.GuildID,
		Name:    input.Name,
		Amount:  amount,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Dealt damage",
		"guild_id", input.GuildID,
		"character", out.Character.Name,
		"damage", out.Damage,
		"hp", out.Character.HP,
	)

	return &DealDamageOutput{
		Character:  out.Character,
		PreviousHP: out.PreviousHP,
		Damage:     out.Damage,
		Details:    details,
	}, nil
}

// HealCharacter restores HP, capped at max; Healing reports what was
// actually applied
func (o *orchestrator) HealCharacter(ctx context.Context, input *HealCharacterInput) (*HealCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	amount, details, err := o.resolveAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	out, err := o.campaignRepo.ApplyHeal(ctx, &campaign.ApplyHealInput{
		GuildID: input.GuildID,
		Name:    input.Name,
		Amount:  amount,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Healed character",
		"guild_id", input.GuildID,
		"character", out.Character.Name,
		"healing", out.Healing,
		"hp", out.Character.HP,
	)

	return &HealCharacterOutput{
		Character:  out.Character,
		PreviousHP: out.PreviousHP,
		Healing:    out.Healing,
		Details:    details,
	}, nil
}

// healthState buckets remaining HP: 0 is unconscious, under a quarter
// is critical, under half is wounded, otherwise healthy
func healthState(hp, maxHP int) HealthState {
	switch {
	case hp <= 0:
		return HealthUnconscious
	case hp*4 < maxHP:
		return HealthCritical
	case hp*2 < maxHP:
		return HealthWounded
	default:
		return HealthHealthy
	}
}

// PartyStatus summarizes every character's health bucket, sorted by name
func (o *orchestrator) PartyStatus(ctx context.Context, input *PartyStatusInput) (*PartyStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.ListCharacters(ctx, &campaign.ListCharactersInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	members := make([]PartyMember, len(out.Characters))
	for i, char := range out.Characters {
		members[i] = PartyMember{
			Character: char,
			State:     healthState(char.HP, char.MaxHP),
		}
	}

	return &PartyStatusOutput{Members: members}, nil
}

// AddInitiative records a combatant's roll; re-adding a name replaces
// its previous entry
func (o *orchestrator) AddInitiative(ctx context.Context, input *AddInitiativeInput) (*AddInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GuildID", input.GuildID, vb)
	errors.ValidateRequired("Name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.campaignRepo.UpsertInitiative(ctx, &campaign.UpsertInitiativeInput{
		GuildID: input.GuildID,
		Name:    input.Name,
		Roll:    input.Roll,
	})
	if err != nil {
		return nil, err
	}

	return &AddInitiativeOutput{Order: out.Order}, nil
}

// GetInitiative returns the current turn order, highest roll first
func (o *orchestrator) GetInitiative(ctx context.Context, input *GetInitiativeInput) (*GetInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.GetInitiativeOrder(ctx, &campaign.GetInitiativeOrderInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	return &GetInitiativeOutput{Order: out.Order}, nil
}

// ClearInitiative resets the turn order for the next encounter
func (o *orchestrator) ClearInitiative(ctx context.Context, input *ClearInitiativeInput) (*ClearInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.ClearInitiative(ctx, &campaign.ClearInitiativeInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Cleared initiative",
		"guild_id", input.GuildID,
		"removed", out.Removed,
	)

	return &ClearInitiativeOutput{Removed: out.Removed}, nil
}
