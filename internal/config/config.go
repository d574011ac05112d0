// Package config loads the demo application's YAML configuration:
// key mappings and a color scheme for the board renderer.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tablero/kanban"
)

// Config represents the application configuration.
type Config struct {
	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// KeyMappings defines the configurable key bindings.
type KeyMappings struct {
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevCard   string `yaml:"prev_card"`
	NextCard   string `yaml:"next_card"`
	GrabCard   string `yaml:"grab_card"`
	GrabColumn string `yaml:"grab_column"`
	Drop       string `yaml:"drop"`
	Cancel     string `yaml:"cancel"`
	AddCard    string `yaml:"add_card"`
	ViewCard   string `yaml:"view_card"`
	Quit       string `yaml:"quit"`
}

// ColorScheme defines the configurable color values.
type ColorScheme struct {
	Accent         string `yaml:"accent"`
	Subtle         string `yaml:"subtle"`
	Normal         string `yaml:"normal"`
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	CardBackground string `yaml:"card_background"`
	SelectedBorder string `yaml:"selected_border"`
	SelectedBg     string `yaml:"selected_bg"`
}

// DefaultKeyMappings returns the default key mappings.
func DefaultKeyMappings() KeyMappings {
	keys := kanban.DefaultKeyMap()
	return KeyMappings{
		PrevColumn: keys.PrevColumn,
		NextColumn: keys.NextColumn,
		PrevCard:   keys.PrevCard,
		NextCard:   keys.NextCard,
		GrabCard:   keys.GrabCard,
		GrabColumn: keys.GrabColumn,
		Drop:       keys.Drop,
		Cancel:     keys.Cancel,
		AddCard:    keys.AddCard,
		ViewCard:   keys.ViewCard,
		Quit:       "q",
	}
}

// Load loads config from the user's config directory.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// KeyMap converts the configured mappings into the renderer's KeyMap.
func (c *Config) KeyMap() kanban.KeyMap {
	return kanban.KeyMap{
		PrevColumn: c.KeyMappings.PrevColumn,
		NextColumn: c.KeyMappings.NextColumn,
		PrevCard:   c.KeyMappings.PrevCard,
		NextCard:   c.KeyMappings.NextCard,
		GrabCard:   c.KeyMappings.GrabCard,
		GrabColumn: c.KeyMappings.GrabColumn,
		Drop:       c.KeyMappings.Drop,
		Cancel:     c.KeyMappings.Cancel,
		AddCard:    c.KeyMappings.AddCard,
		ViewCard:   c.KeyMappings.ViewCard,
	}
}

// Theme converts the configured colors into the renderer's Theme.
// Empty values are filled in by the renderer's defaults.
func (c *Config) Theme() kanban.Theme {
	return kanban.Theme{
		Accent:         c.ColorScheme.Accent,
		Subtle:         c.ColorScheme.Subtle,
		Normal:         c.ColorScheme.Normal,
		ColumnBorder:   c.ColorScheme.ColumnBorder,
		CardBorder:     c.ColorScheme.CardBorder,
		CardBg:         c.ColorScheme.CardBackground,
		SelectedBorder: c.ColorScheme.SelectedBorder,
		SelectedBg:     c.ColorScheme.SelectedBg,
	}
}

func defaultConfig() *Config {
	return &Config{KeyMappings: DefaultKeyMappings()}
}

// applyDefaults fills in any missing key mappings. Colors are left to
// the renderer, which defaults empty values itself.
func (c *Config) applyDefaults() {
	def := DefaultKeyMappings()
	if c.KeyMappings.PrevColumn == "" {
		c.KeyMappings.PrevColumn = def.PrevColumn
	}
	if c.KeyMappings.NextColumn == "" {
		c.KeyMappings.NextColumn = def.NextColumn
	}
	if c.KeyMappings.PrevCard == "" {
		c.KeyMappings.PrevCard = def.PrevCard
	}
	if c.KeyMappings.NextCard == "" {
		c.KeyMappings.NextCard = def.NextCard
	}
	if c.KeyMappings.GrabCard == "" {
		c.KeyMappings.GrabCard = def.GrabCard
	}
	if c.KeyMappings.GrabColumn == "" {
		c.KeyMappings.GrabColumn = def.GrabColumn
	}
	if c.KeyMappings.Drop == "" {
		c.KeyMappings.Drop = def.Drop
	}
	if c.KeyMappings.Cancel == "" {
		c.KeyMappings.Cancel = def.Cancel
	}
	if c.KeyMappings.AddCard == "" {
		c.KeyMappings.AddCard = def.AddCard
	}
	if c.KeyMappings.ViewCard == "" {
		c.KeyMappings.ViewCard = def.ViewCard
	}
	if c.KeyMappings.Quit == "" {
		c.KeyMappings.Quit = def.Quit
	}
}

// getConfigPath returns the path to the config file.
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tablero", "config.yaml"), nil
}
