// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/bitvm/cpu"
)

// Config is a machine preset, usually read from a TOML file:
//
//	verbose = false
//	max_ticks = 10000
//	rng_seed = 0x5a
//	buttons = ["a", "start"]
//	memory = [1, 2, 3]
//
//	[registers]
//	r1 = 10
//	r2 = 0xff
type Config struct {
	Verbose   bool             `toml:"verbose"`   // Verbose logging.
	MaxTicks  int              `toml:"max_ticks"` // Run budget; 0 is unlimited.
	RngSeed   *uint8           `toml:"rng_seed"`  // RNG seed, if set.
	Buttons   []string         `toml:"buttons"`   // Controller buttons held down.
	Registers map[string]uint8 `toml:"registers"` // Initial register values.
	Memory    []uint8          `toml:"memory"`    // Initial data memory, from address 0.
}

// ParseConfig decodes a TOML machine preset. Unknown keys are an error.
func ParseConfig(r io.Reader) (cfg Config, err error) {
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		err = &ErrConfig{Err: err}
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		err = &ErrConfig{Key: undecoded[0].String(), Err: ErrConfigKey}
		return
	}

	return
}

// LoadConfig reads a TOML machine preset file.
func LoadConfig(path string) (cfg Config, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return ParseConfig(inf)
}

// registers converts the register names to indices.
func (cfg *Config) registers() (values map[int]uint8, err error) {
	values = map[int]uint8{}
	for name, value := range cfg.Registers {
		text, ok := strings.CutPrefix(strings.ToLower(name), "r")
		if !ok {
			err = ErrRegisterName(name)
			return
		}
		var n int
		n, err = strconv.Atoi(text)
		if err != nil || n < 1 || n >= cpu.REGISTER_COUNT {
			err = ErrRegisterName(name)
			return
		}
		values[n] = value
	}

	return
}
