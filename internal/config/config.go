// Package config persists the screensaver settings record as JSON in the
// per-user application data directory. Loading never fails: anything
// missing, malformed or invalid falls back to the built-in defaults so the
// saver always has something to render.
package config

import (
	"encoding/json"
	"errors"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/limehawk/tte-screensaver/internal/effects"
)

const (
	appDirName = "tte-screensaver"
	fileName   = "config.json"
)

const defaultArt = `██╗     ██╗███╗   ███╗███████╗██╗  ██╗ █████╗ ██╗    ██╗██╗  ██╗
██║     ██║████╗ ████║██╔════╝██║  ██║██╔══██╗██║    ██║██║ ██╔╝
██║     ██║██╔████╔██║█████╗  ███████║███████║██║ █╗ ██║█████╔╝
██║     ██║██║╚██╔╝██║██╔══╝  ██╔══██║██╔══██║██║███╗██║██╔═██╗
███████╗██║██║ ╚═╝ ██║███████╗██║  ██║██║  ██║╚███╔███╔╝██║  ██╗
╚══════╝╚═╝╚═╝     ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚══╝╚══╝ ╚═╝  ╚═╝`

// Config is the persistent settings record. EffectDuration is a per-effect
// cap in seconds; zero lets each effect run to completion.
type Config struct {
	ASCIIArt        string   `json:"ascii_art" validate:"required"`
	EnabledEffects  []string `json:"enabled_effects" validate:"min=1,dive,required"`
	FontSize        int      `json:"font_size" validate:"min=6,max=120"`
	TargetFPS       int      `json:"target_fps" validate:"min=1,max=240"`
	EffectDuration  int      `json:"effect_duration" validate:"min=0,max=3600"`
	BackgroundColor string   `json:"background_color" validate:"hexcolor"`
	AllMonitors     bool     `json:"all_monitors"`
	SoundPath       string   `json:"sound_path"`
}

var validate = validator.New()

// Default returns the built-in configuration: the banner art, every
// registered effect, and the render tuning the saver ships with.
func Default() Config {
	return Config{
		ASCIIArt:        defaultArt,
		EnabledEffects:  effects.Names(),
		FontSize:        18,
		TargetFPS:       120,
		EffectDuration:  30,
		BackgroundColor: "#000000",
		AllMonitors:     true,
	}
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, fileName), nil
}

// Load reads the configuration at path. A missing file is normal and
// yields the defaults silently; anything unreadable, unparseable or
// invalid yields the defaults with a warning.
func Load(path string) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("could not read config, using defaults")
		}
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not parse config, using defaults")
		return Default()
	}

	cfg.applyDefaults()
	if err := Validate(cfg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config failed validation, using defaults")
		return Default()
	}
	return cfg
}

// Save writes the configuration to path as indented JSON, creating the
// directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports whether the record satisfies the field constraints.
func Validate(cfg Config) error {
	return validate.Struct(cfg)
}

// applyDefaults fills zero-value fields so a partial file still yields a
// complete record. EffectDuration is left alone because zero is meaningful.
func (c *Config) applyDefaults() {
	def := Default()
	if c.ASCIIArt == "" {
		c.ASCIIArt = def.ASCIIArt
	}
	if len(c.EnabledEffects) == 0 {
		c.EnabledEffects = def.EnabledEffects
	}
	if c.FontSize == 0 {
		c.FontSize = def.FontSize
	}
	if c.TargetFPS == 0 {
		c.TargetFPS = def.TargetFPS
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = def.BackgroundColor
	}
}

// Background parses the background color. Malformed values come back black
// rather than failing the render path.
func (c Config) Background() color.RGBA {
	r, g, b, ok := parseHexColor(c.BackgroundColor)
	if !ok {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Duration returns the per-effect cap; zero means run to completion.
func (c Config) Duration() time.Duration {
	return time.Duration(c.EffectDuration) * time.Second
}

// parseHexColor accepts the #rrggbb and #rgb forms the hexcolor validator
// lets through.
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	var v [3]uint8
	switch {
	case len(s) == 7 && s[0] == '#':
		for i := 0; i < 3; i++ {
			hi, ok1 := hexDigit(s[1+i*2])
			lo, ok2 := hexDigit(s[2+i*2])
			if !ok1 || !ok2 {
				return 0, 0, 0, false
			}
			v[i] = hi<<4 | lo
		}
	case len(s) == 4 && s[0] == '#':
		for i := 0; i < 3; i++ {
			d, ok1 := hexDigit(s[1+i])
			if !ok1 {
				return 0, 0, 0, false
			}
			v[i] = d<<4 | d
		}
	default:
		return 0, 0, 0, false
	}
	return v[0], v[1], v[2], true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
