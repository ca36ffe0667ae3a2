package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -destination=mock/mock_roller.go -package=dicemock github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/dice Roller

// Roller provides uniform dice rolls. Implementations must be safe for
// concurrent use; many command invocations share one roller.
type Roller interface {
	// Roll returns a uniform value in [1, sides]
	Roll(sides int) int
}

// RollerConfig configures a seeded roller
type RollerConfig struct {
	// Optional seed for reproducible rolls in tests and the CLI
	Seed int64
}

// SeededRoller implements Roller with a single math/rand generator
type SeededRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewRoller creates a new seeded roller. A zero seed falls back to the
// current time.
func NewRoller(cfg *RollerConfig) *SeededRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &SeededRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a uniform value in [1, sides]. Callers validate sides;
// the guard only keeps Intn from panicking on bad input.
func (r *SeededRoller) Roll(sides int) int {
	if sides < 1 {
		sides = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}
