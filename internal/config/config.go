package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"glitchterm/internal/eventbus"
)

const (
	DefaultDebounceMS = 500
	DefaultSkin       = "default"
	DefaultFlavour    = "glitch"

	envInstanceURL = "GLITCHTERM_INSTANCE_URL"
	envAccessToken = "GLITCHTERM_ACCESS_TOKEN"
)

// Config represents the application configuration
type Config struct {
	Version     int            `toml:"version"`
	InstanceURL string         `toml:"instance_url"`
	AccessToken string         `toml:"access_token"`
	LocalDomain string         `toml:"local_domain"`
	Me          string         `toml:"me"` // id of the logged-in account
	Flavour     string         `toml:"flavour"`
	Search      SearchSettings `toml:"search"`
	UISettings  UISettings     `toml:"ui"`
	Features    Features       `toml:"features"`
}

// SearchSettings tunes the search-as-you-type input
type SearchSettings struct {
	DebounceMS int  `toml:"debounce_ms"`
	Leading    bool `toml:"leading"`
	Trailing   bool `toml:"trailing"`
	Limit      int  `toml:"limit"`
}

// Window returns the debounce quiescence window
func (s SearchSettings) Window() time.Duration {
	if s.DebounceMS <= 0 {
		return DefaultDebounceMS * time.Millisecond
	}
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// UISettings represents UI-related configuration
type UISettings struct {
	AutoplayGIF   bool   `toml:"autoplay_gif"`
	ConfirmReblog bool   `toml:"confirm_reblog"`
	Skin          string `toml:"skin"`
}

// Features lists feature flags advertised by the server and enabled locally
type Features struct {
	Server []string `toml:"server"`
	Client []string `toml:"client"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/glitchterm/config.toml or a home-relative fallback
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "glitchterm", "config.toml")
}

// NewConfigService creates a config service reading from path, or DefaultPath when empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{InstanceURL: cfg.InstanceURL})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	cfg.normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	// The file holds an access token
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "write config file")
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Flavour: DefaultFlavour,
		Search: SearchSettings{
			DebounceMS: DefaultDebounceMS,
			Leading:    true,
			Trailing:   true,
			Limit:      40,
		},
		UISettings: UISettings{
			ConfirmReblog: true,
			Skin:          DefaultSkin,
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envInstanceURL); v != "" {
		c.InstanceURL = v
	}
	if v := os.Getenv(envAccessToken); v != "" {
		c.AccessToken = v
	}
}

func (c *Config) normalize() {
	c.InstanceURL = strings.TrimRight(strings.TrimSpace(c.InstanceURL), "/")
	if c.Flavour == "" {
		c.Flavour = DefaultFlavour
	}
	if c.Search.DebounceMS <= 0 {
		c.Search.DebounceMS = DefaultDebounceMS
	}
	c.UISettings.Skin = NormalizeSkin(c.Flavour, c.UISettings.Skin)
}

// retiredSkins were folded into the default skin for the glitch and vanilla flavours
var retiredSkins = map[string]bool{
	"mastodon-light": true,
	"contrast":       true,
	"system":         true,
}

// NormalizeSkin maps skins that no longer exist in the flavour to the default one.
// Other flavours keep whatever they had.
func NormalizeSkin(flavour, skin string) string {
	if skin == "" {
		return DefaultSkin
	}
	if flavour != "glitch" && flavour != "vanilla" {
		return skin
	}
	if retiredSkins[skin] {
		return DefaultSkin
	}
	return skin
}
