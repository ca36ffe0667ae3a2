// Package campaign implements the campaign orchestrator: quests,
// notes, party inventory, location, play sessions, and guild-level
// bookkeeping.
package campaign

//go:generate mockgen -destination=mock/mock_service.go -package=campaignmock github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/orchestrators/campaign Service

import (
	"context"
	"log/slog"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/entities"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
	campaignrepo "github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/repositories/campaign"
)

// Service defines the interface for campaign bookkeeping operations
type Service interface {
	UpsertQuest(ctx context.Context, input *UpsertQuestInput) (*UpsertQuestOutput, error)
	ListQuests(ctx context.Context, input *ListQuestsInput) (*ListQuestsOutput, error)

	AddNote(ctx context.Context, input *AddNoteInput) (*AddNoteOutput, error)
	ListNotes(ctx context.Context, input *ListNotesInput) (*ListNotesOutput, error)

	AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error)
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error)
	ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error)

	SetLocation(ctx context.Context, input *SetLocationInput) (*SetLocationOutput, error)
	GetLocation(ctx context.Context, input *GetLocationInput) (*GetLocationOutput, error)

	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	GuildStats(ctx context.Context, input *GuildStatsInput) (*GuildStatsOutput, error)
	ResetGuild(ctx context.Context, input *ResetGuildInput) (*ResetGuildOutput, error)
}

// Config holds the dependencies for the campaign orchestrator
type Config struct {
	CampaignRepo campaignrepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CampaignRepo == nil {
		vb.RequiredField("CampaignRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	campaignRepo campaignrepo.Repository
}

// NewOrchestrator creates a new campaign orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{campaignRepo: cfg.CampaignRepo}, nil
}

// UpsertQuest creates a quest or updates one matched by title. An
// empty status defaults to active; anything else must be a known
// status value.
func (o *orchestrator) UpsertQuest(ctx context.Context, input *UpsertQuestInput) (*UpsertQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	status := input.Status
	if status == "" {
		status = string(entities.QuestStatusActive)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GuildID", input.GuildID, vb)
	errors.ValidateRequired("Title", input.Title, vb)
	errors.ValidateEnum("Status", status, entities.ValidQuestStatuses(), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.campaignRepo.UpsertQuest(ctx, &campaignrepo.UpsertQuestInput{
		GuildID:     input.GuildID,
		AuthorID:    input.AuthorID,
		Title:       input.Title,
		Description: input.Description,
		Status:      entities.QuestStatus(status),
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Upserted quest",
		"guild_id", input.GuildID,
		"quest", out.Quest.Title,
		"status", out.Quest.Status,
		"created", out.Created,
	)

	return &UpsertQuestOutput{Quest: out.Quest, Created: out.Created}, nil
}

// ListQuests returns every quest in the guild
func (o *orchestrator) ListQuests(ctx context.Context, input *ListQuestsInput) (*ListQuestsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.ListQuests(ctx, &campaignrepo.ListQuestsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	return &ListQuestsOutput{Quests: out.Quests}, nil
}

// AddNote appends to the campaign log
func (o *orchestrator) AddNote(ctx context.Context, input *AddNoteInput) (*AddNoteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GuildID", input.GuildID, vb)
	errors.ValidateRequired("Title", input.Title, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.campaignRepo.AppendNote(ctx, &campaignrepo.AppendNoteInput{
		GuildID:  input.GuildID,
		AuthorID: input.AuthorID,
		Title:    input.Title,
		Content:  input.Content,
	})
	if err != nil {
		return nil, err
	}

	return &AddNoteOutput{Note: out.Note}, nil
}

// ListNotes returns the campaign log in append order
func (o *orchestrator) ListNotes(ctx context.Context, input *ListNotesInput) (*ListNotesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.ListNotes(ctx, &campaignrepo.ListNotesInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	return &ListNotesOutput{Notes: out.Notes}, nil
}

// AddItem adds to the shared party inventory; quantity defaults to 1
func (o *orchestrator) AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	out, err := o.campaignRepo.AddInventoryItem(ctx, &campaignrepo.AddInventoryItemInput{
		GuildID:     input.GuildID,
		AddedBy:     input.AddedBy,
		Name:        input.Name,
		Quantity:    quantity,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	return &AddItemOutput{Item: out.Item}, nil
}

// RemoveItem takes from the shared party inventory; quantity defaults
// to 1
func (o *orchestrator) RemoveItem(ctx context.Context, input *RemoveItemInput) (*RemoveItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	out, err := o.campaignRepo.RemoveInventoryItem(ctx, &campaignrepo.RemoveInventoryItemInput{
		GuildID:  input.GuildID,
		Name:     input.Name,
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}

	return &RemoveItemOutput{Item: out.Item, Deleted: out.Deleted}, nil
}

// ListInventory returns the shared party inventory
func (o *orchestrator) ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.ListInventory(ctx, &campaignrepo.ListInventoryInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	return &ListInventoryOutput{Items: out.Items}, nil
}

// SetLocation moves the party
func (o *orchestrator) SetLocation(ctx context.Context, input *SetLocationInput) (*SetLocationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.SetLocation(ctx, &campaignrepo.SetLocationInput{
		GuildID:   input.GuildID,
		Name:      input.Name,
		UpdatedBy: input.UpdatedBy,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Party moved",
		"guild_id", input.GuildID,
		"location", out.Location.Name,
	)

	return &SetLocationOutput{Location: out.Location}, nil
}

// GetLocation reads the party's current location
func (o *orchestrator) GetLocation(ctx context.Context, input *GetLocationInput) (*GetLocationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.GetLocation(ctx, &campaignrepo.GetLocationInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	return &GetLocationOutput{Location: out.Location}, nil
}

// StartSession opens a play session, replacing any previous one
func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GuildID", input.GuildID, vb)
	errors.ValidateRequired("Name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.campaignRepo.StartSession(ctx, &campaignrepo.StartSessionInput{
		GuildID:        input.GuildID,
		Name:           input.Name,
		StartedBy:      input.StartedBy,
		VoiceChannelID: input.VoiceChannelID,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Session started",
		"guild_id", input.GuildID,
		"session", out.Session.Name,
	)

	return &StartSessionOutput{Session: out.Session}, nil
}

// GetSession reads the current play session
func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.GetSession(ctx, &campaignrepo.GetSessionInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{Session: out.Session}, nil
}

// EndSession closes the current session by detaching its voice
// channel reference; the session record itself stays readable
func (o *orchestrator) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.ClearSessionVoice(ctx, &campaignrepo.ClearSessionVoiceInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Session ended",
		"guild_id", input.GuildID,
		"session", out.Session.Name,
	)

	return &EndSessionOutput{Session: out.Session}, nil
}

// GuildStats summarizes everything tracked for the guild
func (o *orchestrator) GuildStats(ctx context.Context, input *GuildStatsInput) (*GuildStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.GetGuildStats(ctx, &campaignrepo.GetGuildStatsInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	return &GuildStatsOutput{Stats: out.Stats}, nil
}

// ResetGuild wipes all state for the guild
func (o *orchestrator) ResetGuild(ctx context.Context, input *ResetGuildInput) (*ResetGuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.campaignRepo.ClearGuild(ctx, &campaignrepo.ClearGuildInput{GuildID: input.GuildID})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Guild reset",
		"guild_id", input.GuildID,
		"cleared", out.Cleared,
	)

	return &ResetGuildOutput{Cleared: out.Cleared}, nil
}
