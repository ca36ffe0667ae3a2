package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/dice"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/orchestrators/roller"
	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/pkg/idgen"
)

// envConfig holds knobs read from the environment. A fixed seed makes
// rolls reproducible for scripting and debugging.
type envConfig struct {
	DiceSeed int64  `env:"DICE_SEED"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

var (
	attackModifier int
	attackTargetAC int
	attackDamage   string
)

var rollCmd = &cobra.Command{
	Use:   "roll <notation>",
	Short: "Evaluate dice notation",
	Long:  `Evaluate dice notation like "2d6+3" or "4d6kh3" and print the total with per-die detail. Set DICE_SEED for reproducible rolls.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoll,
}

var attackCmd = &cobra.Command{
	Use:   "attack",
	Short: "Roll a d20 attack against a target AC",
	RunE:  runAttack,
}

func init() {
	attackCmd.Flags().IntVar(&attackModifier, "modifier", 0, "flat attack modifier")
	attackCmd.Flags().IntVar(&attackTargetAC, "ac", 10, "target armor class")
	attackCmd.Flags().StringVar(&attackDamage, "damage", "", "damage notation rolled on a hit, e.g. 1d8+2")
}

func newRollerService() (roller.Service, error) {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return roller.NewOrchestrator(&roller.Config{
		Roller:      dice.NewRoller(&dice.RollerConfig{Seed: cfg.DiceSeed}),
		IDGenerator: idgen.NewUUID("roll"),
	})
}

func runRoll(cmd *cobra.Command, args []string) error {
	service, err := newRollerService()
	if err != nil {
		return err
	}

	out, err := service.Roll(context.Background(), &roller.RollInput{
		UserID:   "cli",
		Notation: strings.Join(args, ""),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s = %d\n", out.Result.Expression, out.Result.Total)
	fmt.Println(out.Result.Details)
	return nil
}

func runAttack(cmd *cobra.Command, args []string) error {
	service, err := newRollerService()
	if err != nil {
		return err
	}

	out, err := service.Attack(context.Background(), &roller.AttackInput{
		UserID:         "cli",
		Modifier:       attackModifier,
		TargetAC:       attackTargetAC,
		DamageNotation: attackDamage,
	})
	if err != nil {
		return err
	}

	verdict := "MISS"
	switch {
	case out.CriticalHit:
		verdict = "CRITICAL HIT"
	case out.CriticalMiss:
		verdict = "CRITICAL MISS"
	case out.Hit:
		verdict = "HIT"
	}
	fmt.Printf("d20: %d %+d = %d vs AC %d: %s\n", out.Roll, out.Modifier, out.Total, out.TargetAC, verdict)
	if out.Damage != nil {
		fmt.Printf("damage: %d (%s)\n", out.Damage.Total, out.Damage.Details)
	}
	return nil
}
