package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the name of the project file looked up next to the inputs
const FileName = "ngc.toml"

// Load reads a project file on top of the defaults. A missing file yields the defaults.
func Load(path string) (*CompilerConfig, error) {
	config := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}
