// Package config loads game settings from an HCL file and TWENTYONE_*
// environment variables. Command line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"
	"unicode"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/text/language"

	"github.com/lox/twentyone/internal/bot"
	"github.com/lox/twentyone/internal/game"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "TWENTYONE_"

// DefaultFile is the config file read when none is given
const DefaultFile = "twentyone.hcl"

// Config represents the complete game configuration
type Config struct {
	Game   GameSettings
	Player PlayerSettings
	Dealer DealerSettings
	UI     UISettings
}

// GameSettings contains round and session settings
type GameSettings struct {
	WinThreshold int    `env:"WIN_THRESHOLD"`
	Seed         int64  `env:"SEED"` // 0 picks a fresh seed per run
	HistoryDir   string `env:"HISTORY_DIR"`
}

// PlayerSettings contains player-specific settings
type PlayerSettings struct {
	Name     string `env:"PLAYER_NAME"`     // Empty means ask at the prompt
	Strategy string `env:"PLAYER_STRATEGY"` // Empty means a human plays
}

// DealerSettings contains the dealer's name pool
type DealerSettings struct {
	Names []string `env:"DEALER_NAMES" envSeparator:","`
}

// UISettings contains user interface settings
type UISettings struct {
	Locale    string        `env:"LOCALE"`
	LogLevel  string        `env:"LOG_LEVEL"`
	LogFile   string        `env:"LOG_FILE"`
	DealDelay time.Duration `env:"DEAL_DELAY"`
	ShowRules bool          `env:"SHOW_RULES"`
	Theme     string        `env:"THEME"`
}

// Themes lists the accepted ui.theme values
var Themes = []string{"auto", "dark", "light", "plain"}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			WinThreshold: game.DefaultWinThreshold,
		},
		Dealer: DealerSettings{
			Names: append([]string(nil), game.DefaultDealerNames...),
		},
		UI: UISettings{
			Locale:    "en-US",
			LogLevel:  "info",
			LogFile:   "twentyone.log",
			DealDelay: 500 * time.Millisecond,
			ShowRules: true,
			Theme:     "auto",
		},
	}
}

// fileConfig mirrors Config in the HCL file. Every block and attribute is
// optional; pointers tell an explicit zero apart from an absent setting.
type fileConfig struct {
	Game   *gameBlock   `hcl:"game,block"`
	Player *playerBlock `hcl:"player,block"`
	Dealer *dealerBlock `hcl:"dealer,block"`
	UI     *uiBlock     `hcl:"ui,block"`
}

type gameBlock struct {
	WinThreshold *int    `hcl:"win_threshold,optional"`
	Seed         *int64  `hcl:"seed,optional"`
	HistoryDir   *string `hcl:"history_dir,optional"`
}

type playerBlock struct {
	Name     *string `hcl:"name,optional"`
	Strategy *string `hcl:"strategy,optional"`
}

type dealerBlock struct {
	Names []string `hcl:"names,optional"`
}

type uiBlock struct {
	Locale      *string `hcl:"locale,optional"`
	LogLevel    *string `hcl:"log_level,optional"`
	LogFile     *string `hcl:"log_file,optional"`
	DealDelayMS *int    `hcl:"deal_delay_ms,optional"`
	ShowRules   *bool   `hcl:"show_rules,optional"`
	Theme       *string `hcl:"theme,optional"`
}

// Load reads defaults, then filename, then the environment. A missing file
// is not an error. environ replaces the process environment when non-nil.
func Load(filename string, environ map[string]string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := ParseEnv(cfg, environ); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from an HCL file over the defaults
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	fc.apply(cfg)
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if g := fc.Game; g != nil {
		set(&cfg.Game.WinThreshold, g.WinThreshold)
		set(&cfg.Game.Seed, g.Seed)
		set(&cfg.Game.HistoryDir, g.HistoryDir)
	}
	if p := fc.Player; p != nil {
		set(&cfg.Player.Name, p.Name)
		set(&cfg.Player.Strategy, p.Strategy)
	}
	if d := fc.Dealer; d != nil && d.Names != nil {
		cfg.Dealer.Names = d.Names
	}
	if u := fc.UI; u != nil {
		set(&cfg.UI.Locale, u.Locale)
		set(&cfg.UI.LogLevel, u.LogLevel)
		set(&cfg.UI.LogFile, u.LogFile)
		set(&cfg.UI.ShowRules, u.ShowRules)
		set(&cfg.UI.Theme, u.Theme)
		if u.DealDelayMS != nil {
			cfg.UI.DealDelay = time.Duration(*u.DealDelayMS) * time.Millisecond
		}
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ParseEnv applies TWENTYONE_* variables to cfg. Unset variables leave
// the current value alone.
func ParseEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.WinThreshold < 1 || c.Game.WinThreshold > 100 {
		return fmt.Errorf("win threshold must be between 1 and 100, got %d", c.Game.WinThreshold)
	}
	if c.Game.Seed < 0 {
		return fmt.Errorf("seed must not be negative, got %d", c.Game.Seed)
	}

	if c.Player.Name != "" && !IsValidName(c.Player.Name) {
		return fmt.Errorf("player name %q must be letters only", c.Player.Name)
	}
	if c.Player.Strategy != "" {
		if err := bot.Validate(c.Player.Strategy); err != nil {
			return fmt.Errorf("player strategy: %w", err)
		}
	}

	if len(c.Dealer.Names) == 0 {
		return fmt.Errorf("at least one dealer name must be configured")
	}
	for _, name := range c.Dealer.Names {
		if !IsValidName(name) {
			return fmt.Errorf("dealer name %q must be letters only", name)
		}
	}

	if _, err := language.Parse(c.UI.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.UI.Locale, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.UI.DealDelay < 0 || c.UI.DealDelay > 10*time.Second {
		return fmt.Errorf("deal delay must be between 0 and 10s, got %s", c.UI.DealDelay)
	}
	if !validTheme(c.UI.Theme) {
		return fmt.Errorf("invalid theme %q (want one of %v)", c.UI.Theme, Themes)
	}

	return nil
}

// Level returns the parsed log level
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.UI.LogLevel, err)
	}
	return level, nil
}

// IsValidName reports whether name is one or more letters
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func validTheme(theme string) bool {
	return slices.Contains(Themes, theme)
}
