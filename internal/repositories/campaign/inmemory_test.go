package campaign_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/entities"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
	mockclock "github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/pkg/clock/mock"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/repositories/campaign"
)

type InMemoryTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	repo *campaign.InMemory
	ctx  context.Context
	now  time.Time
}

func (s *InMemoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	mockClock := mockclock.NewMockClock(s.ctrl)
	mockClock.EXPECT().Now().Return(s.now).AnyTimes()

	repo, err := campaign.NewInMemory(&campaign.Config{Clock: mockClock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *InMemoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestInMemoryTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryTestSuite))
}

func (s *InMemoryTestSuite) addCharacter(guildID, name string, hp int) *entities.Character {
	out, err := s.repo.AddCharacter(s.ctx, &campaign.AddCharacterInput{
		GuildID: guildID,
		OwnerID: "user-1",
		Name:    name,
		HP:      hp,
	})
	s.Require().NoError(err)
	return out.Character
}

func (s *InMemoryTestSuite) TestNewInMemory_RequiresClock() {
	_, err := campaign.NewInMemory(&campaign.Config{})
	s.Error(err)

	_, err = campaign.NewInMemory(nil)
	s.Error(err)
}

func (s *InMemoryTestSuite) TestAddCharacter() {
	char := s.addCharacter("guild-1", "Aragorn", 45)

	s.Equal("Aragorn", char.Name)
	s.Equal(45, char.HP)
	s.Equal(45, char.MaxHP)
	s.Equal("user-1", char.OwnerID)
	s.Equal(s.now, char.CreatedAt)
}

func (s *InMemoryTestSuite) TestAddCharacter_DuplicateNameCaseInsensitive() {
	s.addCharacter("guild-1", "Aragorn", 45)

	_, err := s.repo.AddCharacter(s.ctx, &campaign.AddCharacterInput{
		GuildID: "guild-1",
		OwnerID: "user-2",
		Name:    "aragorn",
		HP:      30,
	})
	s.Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *InMemoryTestSuite) TestAddCharacter_SameNameDifferentGuilds() {
	s.addCharacter("guild-1", "Aragorn", 45)
	s.addCharacter("guild-2", "Aragorn", 30)

	out, err := s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-2",
		Name:    "Aragorn",
	})
	s.Require().NoError(err)
	s.Equal(30, out.Character.HP)
}

func (s *InMemoryTestSuite) TestGetCharacter_CaseInsensitive() {
	s.addCharacter("guild-1", "Aragorn", 45)

	out, err := s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "ARAGORN",
	})
	s.Require().NoError(err)
	s.Equal("Aragorn", out.Character.Name)
}

func (s *InMemoryTestSuite) TestGetCharacter_NotFound() {
	_, err := s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "Boromir",
	})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestGetCharacter_ReturnsCopy() {
	s.addCharacter("guild-1", "Aragorn", 45)

	out, err := s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
	})
	s.Require().NoError(err)

	// Mutating the snapshot must not touch the stored character
	out.Character.HP = 1

	again, err := s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
	})
	s.Require().NoError(err)
	s.Equal(45, again.Character.HP)
}

func (s *InMemoryTestSuite) TestListCharacters_SortedByName() {
	s.addCharacter("guild-1", "Legolas", 40)
	s.addCharacter("guild-1", "Aragorn", 45)
	s.addCharacter("guild-1", "gimli", 50)

	out, err := s.repo.ListCharacters(s.ctx, &campaign.ListCharactersInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Characters, 3)
	s.Equal("Aragorn", out.Characters[0].Name)
	s.Equal("gimli", out.Characters[1].Name)
	s.Equal("Legolas", out.Characters[2].Name)
}

func (s *InMemoryTestSuite) TestListCharacters_FilterByOwner() {
	s.addCharacter("guild-1", "Aragorn", 45)

	_, err := s.repo.AddCharacter(s.ctx, &campaign.AddCharacterInput{
		GuildID: "guild-1",
		OwnerID: "user-2",
		Name:    "Boromir",
		HP:      40,
	})
	s.Require().NoError(err)

	out, err := s.repo.ListCharacters(s.ctx, &campaign.ListCharactersInput{
		GuildID: "guild-1",
		OwnerID: "user-2",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Characters, 1)
	s.Equal("Boromir", out.Characters[0].Name)
}

func (s *InMemoryTestSuite) TestDeleteCharacter() {
	s.addCharacter("guild-1", "Aragorn", 45)

	out, err := s.repo.DeleteCharacter(s.ctx, &campaign.DeleteCharacterInput{
		GuildID: "guild-1",
		Name:    "ARAGORN",
	})
	s.Require().NoError(err)
	s.True(out.Success)

	_, err = s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
	})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestDeleteCharacter_NotFound() {
	_, err := s.repo.DeleteCharacter(s.ctx, &campaign.DeleteCharacterInput{
		GuildID: "guild-1",
		Name:    "Boromir",
	})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestSetHP_ClampsToRange() {
	s.addCharacter("guild-1", "Aragorn", 45)

	out, err := s.repo.SetHP(s.ctx, &campaign.SetHPInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		HP:      100,
	})
	s.Require().NoError(err)
	s.Equal(45, out.Character.HP)

	out, err = s.repo.SetHP(s.ctx, &campaign.SetHPInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		HP:      -10,
	})
	s.Require().NoError(err)
	s.Equal(0, out.Character.HP)
}

func (s *InMemoryTestSuite) TestApplyDamage_FloorsAtZero() {
	s.addCharacter("guild-1", "Legolas", 40)

	out, err := s.repo.ApplyDamage(s.ctx, &campaign.ApplyDamageInput{
		GuildID: "guild-1",
		Name:    "Legolas",
		Amount:  50,
	})
	s.Require().NoError(err)
	s.Equal(0, out.Character.HP)
	s.Equal(40, out.PreviousHP)
	s.Equal(40, out.Damage)
}

func (s *InMemoryTestSuite) TestApplyHeal_CapsAtMaxHP() {
	s.addCharacter("guild-1", "Aragorn", 45)

	_, err := s.repo.ApplyDamage(s.ctx, &campaign.ApplyDamageInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Amount:  10,
	})
	s.Require().NoError(err)

	out, err := s.repo.ApplyHeal(s.ctx, &campaign.ApplyHealInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Amount:  25,
	})
	s.Require().NoError(err)
	s.Equal(45, out.Character.HP)
	s.Equal(35, out.PreviousHP)
	s.Equal(10, out.Healing)
}

func (s *InMemoryTestSuite) TestApplyDamage_ConcurrentCallersNeverLoseUpdates() {
	s.addCharacter("guild-1", "Gimli", 100)

	const callers = 20
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.repo.ApplyDamage(s.ctx, &campaign.ApplyDamageInput{
				GuildID: "guild-1",
				Name:    "Gimli",
				Amount:  3,
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	out, err := s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "Gimli",
	})
	s.Require().NoError(err)
	s.Equal(40, out.Character.HP)
}

func (s *InMemoryTestSuite) TestUpsertInitiative_SortedDescending() {
	for _, c := range []struct {
		name string
		roll int
	}{
		{"Aragorn", 15},
		{"Goblin", 22},
		{"Legolas", 18},
	} {
		_, err := s.repo.UpsertInitiative(s.ctx, &campaign.UpsertInitiativeInput{
			GuildID: "guild-1",
			Name:    c.name,
			Roll:    c.roll,
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.GetInitiativeOrder(s.ctx, &campaign.GetInitiativeOrderInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Order, 3)
	s.Equal("Goblin", out.Order[0].Name)
	s.Equal("Legolas", out.Order[1].Name)
	s.Equal("Aragorn", out.Order[2].Name)
}

func (s *InMemoryTestSuite) TestUpsertInitiative_ReplacesByName() {
	_, err := s.repo.UpsertInitiative(s.ctx, &campaign.UpsertInitiativeInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Roll:    15,
	})
	s.Require().NoError(err)

	out, err := s.repo.UpsertInitiative(s.ctx, &campaign.UpsertInitiativeInput{
		GuildID: "guild-1",
		Name:    "ARAGORN",
		Roll:    3,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Order, 1)
	s.Equal(3, out.Order[0].Roll)
}

func (s *InMemoryTestSuite) TestClearInitiative() {
	_, err := s.repo.UpsertInitiative(s.ctx, &campaign.UpsertInitiativeInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Roll:    15,
	})
	s.Require().NoError(err)

	out, err := s.repo.ClearInitiative(s.ctx, &campaign.ClearInitiativeInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(1, out.Removed)

	order, err := s.repo.GetInitiativeOrder(s.ctx, &campaign.GetInitiativeOrderInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Empty(order.Order)
}

func (s *InMemoryTestSuite) TestUpsertQuest_CreateThenUpdate() {
	out, err := s.repo.UpsertQuest(s.ctx, &campaign.UpsertQuestInput{
		GuildID:     "guild-1",
		AuthorID:    "user-1",
		Title:       "Destroy the Ring",
		Description: "Take it to Mordor",
		Status:      entities.QuestStatusActive,
	})
	s.Require().NoError(err)
	s.True(out.Created)
	s.Equal(1, out.Quest.ID)

	out, err = s.repo.UpsertQuest(s.ctx, &campaign.UpsertQuestInput{
		GuildID:  "guild-1",
		AuthorID: "user-2",
		Title:    "destroy the ring",
		Status:   entities.QuestStatusCompleted,
	})
	s.Require().NoError(err)
	s.False(out.Created)
	s.Equal(1, out.Quest.ID)
	s.Equal(entities.QuestStatusCompleted, out.Quest.Status)
	// Original author survives updates
	s.Equal("user-1", out.Quest.AuthorID)

	list, err := s.repo.ListQuests(s.ctx, &campaign.ListQuestsInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Len(list.Quests, 1)
}

func (s *InMemoryTestSuite) TestAddInventoryItem_AccumulatesQuantity() {
	_, err := s.repo.AddInventoryItem(s.ctx, &campaign.AddInventoryItemInput{
		GuildID:     "guild-1",
		AddedBy:     "user-1",
		Name:        "Torch",
		Quantity:    3,
		Description: "It burns",
	})
	s.Require().NoError(err)

	out, err := s.repo.AddInventoryItem(s.ctx, &campaign.AddInventoryItemInput{
		GuildID:     "guild-1",
		AddedBy:     "user-2",
		Name:        "torch",
		Quantity:    2,
		Description: "A different torch",
	})
	s.Require().NoError(err)
	s.Equal(5, out.Item.Quantity)
	s.Equal("It burns", out.Item.Description)
}

func (s *InMemoryTestSuite) TestRemoveInventoryItem_Decrements() {
	_, err := s.repo.AddInventoryItem(s.ctx, &campaign.AddInventoryItemInput{
		GuildID:  "guild-1",
		AddedBy:  "user-1",
		Name:     "Torch",
		Quantity: 3,
	})
	s.Require().NoError(err)

	out, err := s.repo.RemoveInventoryItem(s.ctx, &campaign.RemoveInventoryItemInput{
		GuildID:  "guild-1",
		Name:     "Torch",
		Quantity: 1,
	})
	s.Require().NoError(err)
	s.False(out.Deleted)
	s.Equal(2, out.Item.Quantity)
}

func (s *InMemoryTestSuite) TestRemoveInventoryItem_DeletesDepletedStack() {
	_, err := s.repo.AddInventoryItem(s.ctx, &campaign.AddInventoryItemInput{
		GuildID:  "guild-1",
		AddedBy:  "user-1",
		Name:     "Torch",
		Quantity: 2,
	})
	s.Require().NoError(err)

	out, err := s.repo.RemoveInventoryItem(s.ctx, &campaign.RemoveInventoryItemInput{
		GuildID:  "guild-1",
		Name:     "Torch",
		Quantity: 5,
	})
	s.Require().NoError(err)
	s.True(out.Deleted)
	s.Nil(out.Item)

	list, err := s.repo.ListInventory(s.ctx, &campaign.ListInventoryInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Empty(list.Items)
}

func (s *InMemoryTestSuite) TestRemoveInventoryItem_NotFound() {
	_, err := s.repo.RemoveInventoryItem(s.ctx, &campaign.RemoveInventoryItemInput{
		GuildID:  "guild-1",
		Name:     "Torch",
		Quantity: 1,
	})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestAppendNote_SequentialIDs() {
	for i, title := range []string{"Session 1", "Session 2"} {
		out, err := s.repo.AppendNote(s.ctx, &campaign.AppendNoteInput{
			GuildID:  "guild-1",
			AuthorID: "user-1",
			Title:    title,
			Content:  "We met a wizard",
		})
		s.Require().NoError(err)
		s.Equal(i+1, out.Note.ID)
	}

	list, err := s.repo.ListNotes(s.ctx, &campaign.ListNotesInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(list.Notes, 2)
	s.Equal("Session 1", list.Notes[0].Title)
}

func (s *InMemoryTestSuite) TestLocation_SetAndGet() {
	_, err := s.repo.GetLocation(s.ctx, &campaign.GetLocationInput{GuildID: "guild-1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.SetLocation(s.ctx, &campaign.SetLocationInput{
		GuildID:   "guild-1",
		Name:      "Rivendell",
		UpdatedBy: "user-1",
	})
	s.Require().NoError(err)

	out, err := s.repo.GetLocation(s.ctx, &campaign.GetLocationInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal("Rivendell", out.Location.Name)
	s.Equal(s.now, out.Location.UpdatedAt)
}

func (s *InMemoryTestSuite) TestSession_StartAndClearVoice() {
	_, err := s.repo.GetSession(s.ctx, &campaign.GetSessionInput{GuildID: "guild-1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.StartSession(s.ctx, &campaign.StartSessionInput{
		GuildID:        "guild-1",
		Name:           "The Council of Elrond",
		StartedBy:      "user-1",
		VoiceChannelID: "voice-42",
	})
	s.Require().NoError(err)

	out, err := s.repo.ClearSessionVoice(s.ctx, &campaign.ClearSessionVoiceInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal("The Council of Elrond", out.Session.Name)
	s.Empty(out.Session.VoiceChannelID)
}

func (s *InMemoryTestSuite) TestGetGuildStats() {
	s.addCharacter("guild-1", "Aragorn", 45)

	_, err := s.repo.UpsertInitiative(s.ctx, &campaign.UpsertInitiativeInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Roll:    15,
	})
	s.Require().NoError(err)

	_, err = s.repo.AppendNote(s.ctx, &campaign.AppendNoteInput{
		GuildID:  "guild-1",
		AuthorID: "user-1",
		Title:    "Session 1",
	})
	s.Require().NoError(err)

	out, err := s.repo.GetGuildStats(s.ctx, &campaign.GetGuildStatsInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(1, out.Stats.CharacterCount)
	s.Equal(1, out.Stats.InitiativeCount)
	s.True(out.Stats.ActiveInitiative)
	s.Equal(1, out.Stats.NoteCount)
	s.Equal(0, out.Stats.QuestCount)
}

func (s *InMemoryTestSuite) TestClearGuild() {
	s.addCharacter("guild-1", "Aragorn", 45)
	s.addCharacter("guild-2", "Boromir", 40)

	out, err := s.repo.ClearGuild(s.ctx, &campaign.ClearGuildInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.True(out.Cleared)

	_, err = s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
	})
	s.True(errors.IsNotFound(err))

	// Other guilds are untouched
	_, err = s.repo.GetCharacter(s.ctx, &campaign.GetCharacterInput{
		GuildID: "guild-2",
		Name:    "Boromir",
	})
	s.NoError(err)

	out, err = s.repo.ClearGuild(s.ctx, &campaign.ClearGuildInput{GuildID: "guild-99"})
	s.Require().NoError(err)
	s.False(out.Cleared)
}
