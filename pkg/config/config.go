package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path"

	"gopkg.in/yaml.v2"
)

const (
	configDir  string = ".csdbg"
	configFile string = "config.yml"
)

// Config defines the options a user may persist across runs in
// ~/.csdbg/config.yml.
type Config struct {
	// CacheCapacity bounds the namespace lookup cache. Zero selects the
	// library default.
	CacheCapacity int `yaml:"cache-capacity,omitempty"`

	// DefaultLibFilter is used when CSDBG_LIBS is unset in the
	// environment; empty means "load every DSO".
	DefaultLibFilter string `yaml:"default-lib-filter,omitempty"`

	// Color enables ANSI-colored debug log headers when the output is a
	// terminal.
	Color bool `yaml:"color"`
}

// LoadConfig attempts to populate a Config from ~/.csdbg/config.yml,
// creating a default file if none exists yet. Errors are logged to
// stderr and swallowed, returning the zero Config, matching the
// teacher's own "never let a config problem abort startup" posture.
func LoadConfig() *Config {
	if err := createConfigPath(); err != nil {
		fmt.Fprintf(os.Stderr, "csdbg: could not create config directory: %v\n", err)
		return &Config{}
	}

	fullConfigFile, err := ConfigFilePath(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "csdbg: unable to get config file path: %v\n", err)
		return &Config{}
	}

	f, err := os.Open(fullConfigFile)
	if err != nil {
		f, err = createDefaultConfig(fullConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "csdbg: error creating default config file: %v\n", err)
			return &Config{}
		}
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "csdbg: unable to read config data: %v\n", err)
		return &Config{}
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		fmt.Fprintf(os.Stderr, "csdbg: unable to decode config file: %v\n", err)
		return &Config{}
	}
	return &c
}

// SaveConfig marshals and writes conf to ~/.csdbg/config.yml.
func SaveConfig(conf *Config) error {
	fullConfigFile, err := ConfigFilePath(configFile)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(*conf)
	if err != nil {
		return err
	}

	f, err := os.Create(fullConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(out)
	return err
}

func createDefaultConfig(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create config file: %v", err)
	}
	if err := writeDefaultConfig(f); err != nil {
		return nil, fmt.Errorf("unable to write default configuration: %v", err)
	}
	return f, nil
}

func writeDefaultConfig(f *os.File) error {
	_, err := f.WriteString(
		`# Configuration file for libcsdbg.

# This is the default configuration file. Available options are provided, but
# disabled. Delete the leading hash mark to enable an item.

# Maximum number of entries retained in the symbol namespace's lookup cache.
# cache-capacity: 4096

# DSO path regex used when CSDBG_LIBS is unset. Empty or commented-out means
# "load every DSO".
# default-lib-filter: ""

# Colorize debug log headers when writing to a terminal.
color: false
`)
	return err
}

func createConfigPath() error {
	dir, err := ConfigFilePath("")
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ConfigFilePath returns the full path to the named file inside the
// per-user config directory (~/.csdbg/<file>).
func ConfigFilePath(file string) (string, error) {
	home := "."
	if usr, err := user.Current(); err == nil {
		home = usr.HomeDir
	}
	return path.Join(home, configDir, file), nil
}
