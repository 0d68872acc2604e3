package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// PathKey names the environment variable holding the optional YAML file
const PathKey = "CONFIG_PATH"

// Source is a snapshot of layered configuration
//
// The YAML file uses the same flat keys as the environment:
//
//	CORE_API_PORT: ":21581"
//	DISCOVER_MAX_ATTEMPTS: 40
//
// Environment values override file values.
type Source struct {
	k *koanf.Koanf
}

// Load reads path (skipped when empty) and then the process environment
func Load(path string) (*Source, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}
	return &Source{k: k}, nil
}

// LoadDefault is Load with the path taken from CONFIG_PATH
func LoadDefault() (*Source, error) { return Load(os.Getenv(PathKey)) }

// String returns the value at key rendered as a string, "" when absent
func (s *Source) String(key string) string {
	if s == nil || s.k == nil || !s.k.Exists(key) {
		return ""
	}
	return s.k.String(key)
}

// Keys lists every loaded key
func (s *Source) Keys() []string {
	if s == nil || s.k == nil {
		return nil
	}
	return s.k.Keys()
}
