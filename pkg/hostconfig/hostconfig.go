// Package hostconfig loads the engine's build-time knobs (region size,
// stack size, for-loop arity cap, stack-walk toggle, exception mode) from
// a YAML file, the ambient configuration concern SPEC_FULL.md re-homes
// the teacher's gopkg.in/yaml.v3 dependency to.
package hostconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yzg-lang/yzg/pkg/engine"
)

// File is the on-disk shape of a host config file:
//
//	region_size_bytes: 4194304
//	stack_size_bytes: 1048576
//	max_for_iterators: 16
//	stack_walk: true
//	panic_on_throw: false
//	log_level: info
type File struct {
	RegionSizeBytes int    `yaml:"region_size_bytes"`
	StackSizeBytes  int    `yaml:"stack_size_bytes"`
	MaxForIterators int    `yaml:"max_for_iterators"`
	StackWalk       *bool  `yaml:"stack_walk"`
	PanicOnThrow    bool   `yaml:"panic_on_throw"`
	LogLevel        string `yaml:"log_level"`
}

// Load reads and parses a host config file at path.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("hostconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("hostconfig: parsing %s: %w", path, err)
	}
	return f, nil
}

// ToEngineConfig merges the file's settings onto engine.DefaultConfig,
// leaving any zero-valued field at its default.
func (f File) ToEngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if f.RegionSizeBytes > 0 {
		cfg.RegionSize = f.RegionSizeBytes
	}
	if f.StackSizeBytes > 0 {
		cfg.StackSize = f.StackSizeBytes
	}
	if f.MaxForIterators > 0 {
		cfg.MaxForIterators = f.MaxForIterators
	}
	if f.StackWalk != nil {
		cfg.StackWalk = *f.StackWalk
	}
	cfg.PanicOnThrow = f.PanicOnThrow
	return cfg
}
