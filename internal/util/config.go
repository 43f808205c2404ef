package util

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Configuration is the project file settings. Flags override these; an
// absent newt.toml leaves the defaults in place.
type Configuration struct {
	Root     string   `toml:"root"`
	LogLevel string   `toml:"log_level"`
	LogFile  string   `toml:"log_file"`
	DebugAST bool     `toml:"debug_ast"`
	Modules  []string `toml:"modules"`
}

// LoadConfig reads path as a TOML project file. A missing file is not an
// error: the zero configuration comes back and defaults apply downstream
// (empty module list means all). Unknown keys are errors.
func LoadConfig(path string) (Configuration, error) {
	var config Configuration

	meta, err := toml.DecodeFile(path, &config)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("failed to load %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}

	return config, nil
}
