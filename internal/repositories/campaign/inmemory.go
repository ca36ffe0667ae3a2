package campaign

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/entities"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/pkg/clock"
)

// Config holds the dependencies for the in-memory repository
type Config struct {
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// InMemory implements Repository with volatile per-guild partitions.
// The outer RWMutex only guards the partition map; each partition has
// its own mutex, so operations on different guilds run in parallel.
type InMemory struct {
	clock clock.Clock

	mu     sync.RWMutex
	guilds map[string]*guildState
}

// guildState is one guild's partition. Its mutex is held for the full
// read-modify-write of each operation and never across calls out of
// the store.
type guildState struct {
	mu sync.Mutex

	characters map[string]*entities.Character // keyed by lowercase name
	initiative []entities.InitiativeEntry
	quests     []*entities.Quest
	inventory  []*entities.InventoryItem
	notes      []*entities.Note
	location   *entities.Location
	session    *entities.Session
}

// NewInMemory creates a new in-memory campaign repository
func NewInMemory(cfg *Config) (*InMemory, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &InMemory{
		clock:  cfg.Clock,
		guilds: make(map[string]*guildState),
	}, nil
}

// Ensure InMemory implements Repository
var _ Repository = (*InMemory)(nil)

// guild returns the partition for guildID, creating it lazily
func (r *InMemory) guild(guildID string) *guildState {
	r.mu.RLock()
	g, ok := r.guilds[guildID]
	r.mu.RUnlock()
	if ok {
		return g
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok = r.guilds[guildID]; ok {
		return g
	}
	g = &guildState{
		characters: make(map[string]*entities.Character),
	}
	r.guilds[guildID] = g
	return g
}

func clampHP(hp, maxHP int) int {
	if hp < 0 {
		return 0
	}
	if hp > maxHP {
		return maxHP
	}
	return hp
}

func copyCharacter(c *entities.Character) *entities.Character {
	cp := *c
	return &cp
}

// AddCharacter creates a character with hp == max_hp. Names are unique
// within the guild, compared case-insensitively.
func (r *InMemory) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("character name is required")
	}
	if input.HP < 1 {
		return nil, errors.InvalidArgument("hp must be at least 1")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(input.Name)
	if _, exists := g.characters[key]; exists {
		return nil, errors.AlreadyExistsf("character %q already exists", input.Name).
			WithMeta("character", input.Name)
	}

	char := &entities.Character{
		Name:      input.Name,
		HP:        input.HP,
		MaxHP:     input.HP,
		OwnerID:   input.OwnerID,
		CreatedAt: r.clock.Now(),
	}
	g.characters[key] = char

	return &AddCharacterOutput{Character: copyCharacter(char)}, nil
}

// GetCharacter retrieves a character by case-insensitive name
func (r *InMemory) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	char, exists := g.characters[strings.ToLower(input.Name)]
	if !exists {
		return nil, errors.NotFoundf("character %q not found", input.Name).
			WithMeta("character", input.Name)
	}

	return &GetCharacterOutput{Character: copyCharacter(char)}, nil
}

// ListCharacters returns all characters in the guild, optionally
// filtered by owner, sorted by name
func (r *InMemory) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	chars := make([]*entities.Character, 0, len(g.characters))
	for _, char := range g.characters {
		if input.OwnerID != "" && char.OwnerID != input.OwnerID {
			continue
		}
		chars = append(chars, copyCharacter(char))
	}
	sort.Slice(chars, func(i, j int) bool {
		return strings.ToLower(chars[i].Name) < strings.ToLower(chars[j].Name)
	})

	return &ListCharactersOutput{Characters: chars}, nil
}

// DeleteCharacter removes a character by case-insensitive name
func (r *InMemory) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(input.Name)
	if _, exists := g.characters[key]; !exists {
		return nil, errors.NotFoundf("character %q not found", input.Name).
			WithMeta("character", input.Name)
	}
	delete(g.characters, key)

	return &DeleteCharacterOutput{Success: true}, nil
}

// SetHP sets a character's HP directly, clamped to [0, max_hp]
func (r *InMemory) SetHP(ctx context.Context, input *SetHPInput) (*SetHPOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	char, exists := g.characters[strings.ToLower(input.Name)]
	if !exists {
		return nil, errors.NotFoundf("character %q not found", input.Name).
			WithMeta("character", input.Name)
	}

	char.HP = clampHP(input.HP, char.MaxHP)

	return &SetHPOutput{Character: copyCharacter(char)}, nil
}

// ApplyDamage subtracts HP, clamping at zero. The check and the write
// run under the guild lock as one atomic unit.
func (r *InMemory) ApplyDamage(ctx context.Context, input *ApplyDamageInput) (*ApplyDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("damage amount cannot be negative")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	char, exists := g.characters[strings.ToLower(input.Name)]
	if !exists {
		return nil, errors.NotFoundf("character %q not found", input.Name).
			WithMeta("character", input.Name)
	}

	previous := char.HP
	char.HP = clampHP(previous-input.Amount, char.MaxHP)

	return &ApplyDamageOutput{
		Character:  copyCharacter(char),
		PreviousHP: previous,
		Damage:     previous - char.HP,
	}, nil
}

// ApplyHeal adds HP, capped at max_hp. Healing reports the amount
// actually applied, which may be less than requested.
func (r *InMemory) ApplyHeal(ctx context.Context, input *ApplyHealInput) (*ApplyHealOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Amount < 0 {
		return nil, errors.InvalidArgument("healing amount cannot be negative")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	char, exists := g.characters[strings.ToLower(input.Name)]
	if !exists {
		return nil, errors.NotFoundf("character %q not found", input.Name).
			WithMeta("character", input.Name)
	}

	previous := char.HP
	char.HP = clampHP(previous+input.Amount, char.MaxHP)

	return &ApplyHealOutput{
		Character:  copyCharacter(char),
		PreviousHP: previous,
		Healing:    char.HP - previous,
	}, nil
}

// UpsertInitiative replaces any case-insensitive name match, inserts
// the entry, and re-sorts descending by roll
func (r *InMemory) UpsertInitiative(ctx context.Context, input *UpsertInitiativeInput) (*UpsertInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("combatant name is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(input.Name)
	kept := g.initiative[:0]
	for _, entry := range g.initiative {
		if strings.ToLower(entry.Name) != key {
			kept = append(kept, entry)
		}
	}
	g.initiative = append(kept, entities.InitiativeEntry{Name: input.Name, Roll: input.Roll})
	sort.SliceStable(g.initiative, func(i, j int) bool {
		return g.initiative[i].Roll > g.initiative[j].Roll
	})

	return &UpsertInitiativeOutput{Order: copyInitiative(g.initiative)}, nil
}

// GetInitiativeOrder returns a snapshot of the turn order
func (r *InMemory) GetInitiativeOrder(ctx context.Context, input *GetInitiativeOrderInput) (*GetInitiativeOrderOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	return &GetInitiativeOrderOutput{Order: copyInitiative(g.initiative)}, nil
}

// ClearInitiative removes every entry from the turn order
func (r *InMemory) ClearInitiative(ctx context.Context, input *ClearInitiativeInput) (*ClearInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := len(g.initiative)
	g.initiative = nil

	return &ClearInitiativeOutput{Removed: removed}, nil
}

func copyInitiative(order []entities.InitiativeEntry) []entities.InitiativeEntry {
	snapshot := make([]entities.InitiativeEntry, len(order))
	copy(snapshot, order)
	return snapshot
}

// UpsertQuest inserts a quest or, on a case-insensitive title match,
// updates description, status and the updated timestamp in place
func (r *InMemory) UpsertQuest(ctx context.Context, input *UpsertQuestInput) (*UpsertQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Title == "" {
		return nil, errors.InvalidArgument("quest title is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	now := r.clock.Now()
	key := strings.ToLower(input.Title)
	for _, quest := range g.quests {
		if strings.ToLower(quest.Title) == key {
			quest.Description = input.Description
			quest.Status = input.Status
			quest.UpdatedAt = now

			cp := *quest
			return &UpsertQuestOutput{Quest: &cp}, nil
		}
	}

	quest := &entities.Quest{
		ID:          len(g.quests) + 1,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		AuthorID:    input.AuthorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	g.quests = append(g.quests, quest)

	cp := *quest
	return &UpsertQuestOutput{Quest: &cp, Created: true}, nil
}

// ListQuests returns all quests in insertion order
func (r *InMemory) ListQuests(ctx context.Context, input *ListQuestsInput) (*ListQuestsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	quests := make([]*entities.Quest, len(g.quests))
	for i, quest := range g.quests {
		cp := *quest
		quests[i] = &cp
	}

	return &ListQuestsOutput{Quests: quests}, nil
}

// AddInventoryItem accumulates quantity on a case-insensitive name
// match, keeping the first stored description, or inserts a new stack
func (r *InMemory) AddInventoryItem(ctx context.Context, input *AddInventoryItemInput) (*AddInventoryItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("item name is required")
	}
	if input.Quantity < 1 {
		return nil, errors.InvalidArgument("quantity must be at least 1")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(input.Name)
	for _, item := range g.inventory {
		if strings.ToLower(item.Name) == key {
			item.Quantity += input.Quantity

			cp := *item
			return &AddInventoryItemOutput{Item: &cp}, nil
		}
	}

	item := &entities.InventoryItem{
		Name:        input.Name,
		Quantity:    input.Quantity,
		Description: input.Description,
		AddedBy:     input.AddedBy,
		AddedAt:     r.clock.Now(),
	}
	g.inventory = append(g.inventory, item)

	cp := *item
	return &AddInventoryItemOutput{Item: &cp}, nil
}

// RemoveInventoryItem decrements quantity and deletes the stack when
// it would drop to zero or below
func (r *InMemory) RemoveInventoryItem(ctx context.Context, input *RemoveInventoryItemInput) (*RemoveInventoryItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Quantity < 1 {
		return nil, errors.InvalidArgument("quantity must be at least 1")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(input.Name)
	for i, item := range g.inventory {
		if strings.ToLower(item.Name) != key {
			continue
		}

		if item.Quantity <= input.Quantity {
			g.inventory = append(g.inventory[:i], g.inventory[i+1:]...)
			return &RemoveInventoryItemOutput{Deleted: true}, nil
		}

		item.Quantity -= input.Quantity
		cp := *item
		return &RemoveInventoryItemOutput{Item: &cp}, nil
	}

	return nil, errors.NotFoundf("item %q not found", input.Name).
		WithMeta("item", input.Name)
}

// ListInventory returns the party inventory in insertion order
func (r *InMemory) ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	items := make([]*entities.InventoryItem, len(g.inventory))
	for i, item := range g.inventory {
		cp := *item
		items[i] = &cp
	}

	return &ListInventoryOutput{Items: items}, nil
}

// AppendNote appends to the campaign log; notes are never mutated or
// deleted, and ids are sequential per guild
func (r *InMemory) AppendNote(ctx context.Context, input *AppendNoteInput) (*AppendNoteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Title == "" {
		return nil, errors.InvalidArgument("note title is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	note := &entities.Note{
		ID:        len(g.notes) + 1,
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  input.AuthorID,
		CreatedAt: r.clock.Now(),
	}
	g.notes = append(g.notes, note)

	cp := *note
	return &AppendNoteOutput{Note: &cp}, nil
}

// ListNotes returns all notes in append order
func (r *InMemory) ListNotes(ctx context.Context, input *ListNotesInput) (*ListNotesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	notes := make([]*entities.Note, len(g.notes))
	for i, note := range g.notes {
		cp := *note
		notes[i] = &cp
	}

	return &ListNotesOutput{Notes: notes}, nil
}

// SetLocation replaces the party's single location slot
func (r *InMemory) SetLocation(ctx context.Context, input *SetLocationInput) (*SetLocationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("location is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	g.location = &entities.Location{
		Name:      input.Name,
		UpdatedBy: input.UpdatedBy,
		UpdatedAt: r.clock.Now(),
	}

	cp := *g.location
	return &SetLocationOutput{Location: &cp}, nil
}

// GetLocation reads the current location; NotFound when unset
func (r *InMemory) GetLocation(ctx context.Context, input *GetLocationInput) (*GetLocationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.location == nil {
		return nil, errors.NotFound("no location set")
	}

	cp := *g.location
	return &GetLocationOutput{Location: &cp}, nil
}

// StartSession replaces the guild's single session slot
func (r *InMemory) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("session name is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	g.session = &entities.Session{
		Name:           input.Name,
		StartedBy:      input.StartedBy,
		StartedAt:      r.clock.Now(),
		VoiceChannelID: input.VoiceChannelID,
	}

	cp := *g.session
	return &StartSessionOutput{Session: &cp}, nil
}

// GetSession reads the current session; NotFound when none started
func (r *InMemory) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session == nil {
		return nil, errors.NotFound("no active session")
	}

	cp := *g.session
	return &GetSessionOutput{Session: &cp}, nil
}

// ClearSessionVoice detaches the opaque voice channel reference from
// the current session
func (r *InMemory) ClearSessionVoice(ctx context.Context, input *ClearSessionVoiceInput) (*ClearSessionVoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session == nil {
		return nil, errors.NotFound("no active session")
	}

	g.session.VoiceChannelID = ""

	cp := *g.session
	return &ClearSessionVoiceOutput{Session: &cp}, nil
}

// GetGuildStats summarizes the guild's tracked state
func (r *InMemory) GetGuildStats(ctx context.Context, input *GetGuildStatsInput) (*GetGuildStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	g := r.guild(input.GuildID)
	g.mu.Lock()
	defer g.mu.Unlock()

	return &GetGuildStatsOutput{
		Stats: entities.GuildStats{
			CharacterCount:   len(g.characters),
			InitiativeCount:  len(g.initiative),
			ActiveInitiative: len(g.initiative) > 0,
			QuestCount:       len(g.quests),
			NoteCount:        len(g.notes),
			InventoryCount:   len(g.inventory),
		},
	}, nil
}

// ClearGuild drops the entire partition
func (r *InMemory) ClearGuild(ctx context.Context, input *ClearGuildInput) (*ClearGuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.GuildID == "" {
		return nil, errors.InvalidArgument("guild ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.guilds[input.GuildID]
	delete(r.guilds, input.GuildID)

	return &ClearGuildOutput{Cleared: existed}, nil
}
