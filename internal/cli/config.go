package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// configurable lists the flags a config file may set. Per-run choices such as
// the date, range or output file are left to the command line.
var configurable = map[string]bool{
	"seed":        true,
	"format":      true,
	"date-format": true,
	"suffix-dn":   true,
	"verbose":     true,
	"debug":       true,
}

// TOML is a kong.ConfigurationLoader reading flag defaults from a TOML file
// such as:
//
//	seed = "MYSEED"
//	format = "json"
//	date_format = "%m/%d/%Y"
//
// Keys are flag names; underscores may be used in place of dashes. A flag
// whose environment variable is set is left to kong's env handling.
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var resolver kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if !configurable[flag.Name] {
			return nil, nil
		}
		// The environment outranks the file.
		for _, env := range flag.Envs {
			if _, ok := os.LookupEnv(env); ok {
				return nil, nil
			}
		}
		for _, key := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, ok := values[key]; ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return resolver, nil
}

// DefaultConfigPath is the config file read when --config is not given.
// An existing ~/.config/potd/config.toml is used on every platform; otherwise
// the file lives under os.UserConfigDir.
func DefaultConfigPath() string {
	const app, name = "potd", "config.toml"

	home, homeErr := os.UserHomeDir()
	if homeErr == nil {
		dotConfig := filepath.Join(home, ".config", app, name)
		if _, err := os.Stat(dotConfig); err == nil {
			return dotConfig
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, app, name)
	}
	if homeErr == nil {
		return filepath.Join(home, ".config", app, name)
	}
	return name
}
