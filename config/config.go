// Package config loads the toolkit's TOML configuration: the working
// directory for cached tokens and revisions, the Google credential paths and
// the cloud drive app registration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk configuration. Missing fields keep their defaults.
type Config struct {
	Workdir string `toml:"workdir"`

	Google struct {
		Credentials string `toml:"credentials"`
		Tokens      string `toml:"tokens"`
		Spreadsheet string `toml:"spreadsheet"`
	} `toml:"google"`

	Disk struct {
		Credentials string `toml:"credentials"`
		Tokens      string `toml:"tokens"`
	} `toml:"disk"`
}

// Default returns the configuration with the platform's default paths
// filled in.
func Default(workdir string) Config {
	c := Config{
		Workdir: workdir,
	}

	c.Google.Credentials = filepath.Join(workdir, ".google", "credentials.json")
	c.Google.Tokens = filepath.Join(workdir, ".google")
	c.Disk.Credentials = filepath.Join(workdir, ".disk", "credentials.json")
	c.Disk.Tokens = filepath.Join(workdir, ".disk", "tokens.json")

	return c
}

// Load reads a TOML configuration file over the defaults. A missing file is
// not an error - the defaults are returned as-is.
func Load(path, workdir string) (Config, error) {
	c := Default(workdir)

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	} else if err != nil {
		return c, err
	}

	if err := toml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("invalid configuration file %s (%v)", path, err)
	}

	return c, nil
}

// Save writes the configuration to a TOML file, creating the directory if
// need be.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0600)
}
