// Package config loads the optional INI settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	DefaultColumnWidth = 12
	MinColumnWidth     = 6
)

const defaultConfig = `
[setup]
players =

[board]
column_width = 12
show_help = true
`

// Config holds settings from the INI file.
type Config struct {
	Players     string
	ColumnWidth int
	ShowHelp    bool
	// Path is the file the settings came from, empty when only defaults apply.
	Path string
}

// DefaultPath returns ~/.config/go-tally/config.ini.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "go-tally", "config.ini"), nil
}

// Load reads path over the built-in defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	options := ini.LoadOptions{
		Insensitive:             false,
		IgnoreInlineComment:     false,
		SkipUnrecognizableLines: true,
		AllowShadows:            false,
	}

	sources := []interface{}{[]byte(defaultConfig)}
	used := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, path)
			used = path
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access config %s: %w", path, err)
		}
	}

	iniFile, err := ini.LoadSources(options, sources[0], sources[1:]...)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	setup := iniFile.Section("setup")
	board := iniFile.Section("board")

	c := &Config{
		Players:     setup.Key("players").String(),
		ColumnWidth: board.Key("column_width").MustInt(DefaultColumnWidth),
		ShowHelp:    board.Key("show_help").MustBool(true),
		Path:        used,
	}
	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	if c.ColumnWidth < MinColumnWidth {
		c.ColumnWidth = MinColumnWidth
	}
}
