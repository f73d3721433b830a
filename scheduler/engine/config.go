package engine

import (
	"fmt"

	"github.com/twitter/procsched/scheduler/domain"
)

const (
	// Process table slots, including the root.
	DefaultMaxProcesses = 16
)

// Units owned by each resource class, indexed by rid.
var DefaultInventories = []int{1, 1, 2, 3}

// Config variables read when the engine is built
// MaxProcesses - number of process table slots, the root included.
// Inventories - total units of each resource class, one entry per class.
// DebugMode - if true, every applied operation is followed by CheckInvariants
//
//	and a violation panics.
type Config struct {
	MaxProcesses int
	Inventories  []int
	DebugMode    bool
}

func DefaultConfig() Config {
	return Config{
		MaxProcesses: DefaultMaxProcesses,
		Inventories:  append([]int(nil), DefaultInventories...),
	}
}

func (c Config) String() string {
	return fmt.Sprintf("EngineConfig: MaxProcesses: %d, Inventories: %v, DebugMode: %t",
		c.MaxProcesses, c.Inventories, c.DebugMode)
}

// Validate returns an error describing the first unusable setting.
func (c Config) Validate() error {
	if c.MaxProcesses < 1 {
		return fmt.Errorf("invalid MaxProcesses %d, must be >= 1", c.MaxProcesses)
	}
	if len(c.Inventories) == 0 {
		return fmt.Errorf("invalid Inventories, at least one resource class is required")
	}
	for rid, inv := range c.Inventories {
		if inv < 1 {
			return fmt.Errorf("invalid inventory %d for resource %d, must be >= 1", inv, domain.Rid(rid))
		}
	}
	return nil
}
