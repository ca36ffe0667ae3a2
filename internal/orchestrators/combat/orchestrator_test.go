package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dicemock "github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/dice/mock"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/orchestrators/combat"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/pkg/clock"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/repositories/campaign"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *dicemock.MockRoller
	service    combat.Service
	ctx        context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = dicemock.NewMockRoller(s.ctrl)
	s.ctx = context.Background()

	repo, err := campaign.NewInMemory(&campaign.Config{Clock: clock.New()})
	s.Require().NoError(err)

	service, err := combat.NewOrchestrator(&combat.Config{
		CampaignRepo: repo,
		Roller:       s.mockRoller,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) addCharacter(name string, maxHP int) {
	_, err := s.service.AddCharacter(s.ctx, &combat.AddCharacterInput{
		GuildID: "guild-1",
		OwnerID: "user-1",
		Name:    name,
		MaxHP:   maxHP,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestAddCharacter() {
	out, err := s.service.AddCharacter(s.ctx, &combat.AddCharacterInput{
		GuildID: "guild-1",
		OwnerID: "user-1",
		Name:    "Aragorn",
		MaxHP:   45,
	})
	s.Require().NoError(err)
	s.Equal("Aragorn", out.Character.Name)
	s.Equal(45, out.Character.HP)
}

func (s *OrchestratorTestSuite) TestAddCharacter_ValidatesMaxHP() {
	_, err := s.service.AddCharacter(s.ctx, &combat.AddCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		MaxHP:   0,
	})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.service.AddCharacter(s.ctx, &combat.AddCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		MaxHP:   combat.MaxCharacterHP + 1,
	})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestAddCharacter_Duplicate() {
	s.addCharacter("Aragorn", 45)

	_, err := s.service.AddCharacter(s.ctx, &combat.AddCharacterInput{
		GuildID: "guild-1",
		Name:    "ARAGORN",
		MaxHP:   30,
	})
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestRemoveCharacter() {
	s.addCharacter("Aragorn", 45)

	out, err := s.service.RemoveCharacter(s.ctx, &combat.RemoveCharacterInput{
		GuildID: "guild-1",
		Name:    "aragorn",
	})
	s.Require().NoError(err)
	s.True(out.Success)

	_, err = s.service.GetCharacter(s.ctx, &combat.GetCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestDealDamage_BareInteger() {
	s.addCharacter("Legolas", 40)

	out, err := s.service.DealDamage(s.ctx, &combat.DealDamageInput{
		GuildID: "guild-1",
		Name:    "Legolas",
		Amount:  "12",
	})
	s.Require().NoError(err)
	s.Equal(28, out.Character.HP)
	s.Equal(12, out.Damage)
	s.Empty(out.Details)
}

func (s *OrchestratorTestSuite) TestDealDamage_DiceNotation() {
	s.addCharacter("Legolas", 40)

	s.mockRoller.EXPECT().Roll(6).Return(4)
	s.mockRoller.EXPECT().Roll(6).Return(5)

	out, err := s.service.DealDamage(s.ctx, &combat.DealDamageInput{
		GuildID: "guild-1",
		Name:    "Legolas",
		Amount:  "2d6+1",
	})
	s.Require().NoError(err)
	s.Equal(10, out.Damage)
	s.Equal(30, out.Character.HP)
	s.Equal("Rolled: [4, 5] + 1", out.Details)
}

func (s *OrchestratorTestSuite) TestDealDamage_FloorsAtZero() {
	s.addCharacter("Legolas", 40)

	out, err := s.service.DealDamage(s.ctx, &combat.DealDamageInput{
		GuildID: "guild-1",
		Name:    "Legolas",
		Amount:  "50",
	})
	s.Require().NoError(err)
	s.Equal(0, out.Character.HP)
	s.Equal(40, out.Damage)
}

func (s *OrchestratorTestSuite) TestDealDamage_MalformedAmount() {
	s.addCharacter("Legolas", 40)

	_, err := s.service.DealDamage(s.ctx, &combat.DealDamageInput{
		GuildID: "guild-1",
		Name:    "Legolas",
		Amount:  "lots",
	})
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestHealCharacter_CapsAtMax() {
	s.addCharacter("Aragorn", 45)

	_, err := s.service.DealDamage(s.ctx, &combat.DealDamageInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Amount:  "10",
	})
	s.Require().NoError(err)

	out, err := s.service.HealCharacter(s.ctx, &combat.HealCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Amount:  "25",
	})
	s.Require().NoError(err)
	s.Equal(45, out.Character.HP)
	s.Equal(10, out.Healing)
}

func (s *OrchestratorTestSuite) TestHealCharacter_DiceNotation() {
	s.addCharacter("Aragorn", 45)

	_, err := s.service.DealDamage(s.ctx, &combat.DealDamageInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Amount:  "20",
	})
	s.Require().NoError(err)

	s.mockRoller.EXPECT().Roll(8).Return(6)

	out, err := s.service.HealCharacter(s.ctx, &combat.HealCharacterInput{
		GuildID: "guild-1",
		Name:    "Aragorn",
		Amount:  "1d8+2",
	})
	s.Require().NoError(err)
	s.Equal(8, out.Healing)
	s.Equal(33, out.Character.HP)
}

func (s *OrchestratorTestSuite) TestPartyStatus_HealthBuckets() {
	s.addCharacter("Healthy", 40)
	s.addCharacter("Wounded", 40)
	s.addCharacter("Critical", 40)
	s.addCharacter("Down", 40)

	for name, damage := range map[string]string{
		"Wounded":  "25",
		"Critical": "35",
		"Down":     "40",
	} {
		_, err := s.service.DealDamage(s.ctx, &combat.DealDamageInput{
			GuildID: "guild-1",
			Name:    name,
			Amount:  damage,
		})
		s.Require().NoError(err)
	}

	out, err := s.service.PartyStatus(s.ctx, &combat.PartyStatusInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Members, 4)

	states := make(map[string]combat.HealthState, len(out.Members))
	for _, m := range out.Members {
		states[m.Character.Name] = m.State
	}
	s.Equal(combat.HealthHealthy, states["Healthy"])
	s.Equal(combat.HealthWounded, states["Wounded"])
	s.Equal(combat.HealthCritical, states["Critical"])
	s.Equal(combat.HealthUnconscious, states["Down"])
}

func (s *OrchestratorTestSuite) TestInitiative_RoundTrip() {
	for _, c := range []struct {
		name string
		roll int
	}{
		{"Aragorn", 15},
		{"Goblin", 22},
	} {
		_, err := s.service.AddInitiative(s.ctx, &combat.AddInitiativeInput{
			GuildID: "guild-1",
			Name:    c.name,
			Roll:    c.roll,
		})
		s.Require().NoError(err)
	}

	out, err := s.service.GetInitiative(s.ctx, &combat.GetInitiativeInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Order, 2)
	s.Equal("Goblin", out.Order[0].Name)

	cleared, err := s.service.ClearInitiative(s.ctx, &combat.ClearInitiativeInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(2, cleared.Removed)
}
