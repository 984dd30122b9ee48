package options

import (
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors SquareOptions in a TOML file. Unset keys leave the
// corresponding option untouched.
type Config struct {
	Mode      *string  `toml:"mode"`
	Width     *int     `toml:"width"`
	Height    *int     `toml:"height"`
	Duration  *float64 `toml:"duration"`
	FPS       *int     `toml:"fps"`
	Output    *string  `toml:"output"`
	FFMPEG    *string  `toml:"ffmpeg"`
	Codec     *string  `toml:"codec"`
	Headless  *bool    `toml:"headless"`
	Translate *bool    `toml:"translate"`
}

// LoadConfig reads and decodes a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply copies the config values into o, skipping every option whose flag
// was set explicitly on fs so the command line always wins.
func (c *Config) Apply(o *SquareOptions, fs *flag.FlagSet) {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	setValue(explicit, "mode", o.Mode, c.Mode)
	setValue(explicit, "width", o.Width, c.Width)
	setValue(explicit, "height", o.Height, c.Height)
	setValue(explicit, "fps", o.FPS, c.FPS)
	setValue(explicit, "output", o.OutputFile, c.Output)
	setValue(explicit, "ffmpeg", o.FFMPEGPath, c.FFMPEG)
	setValue(explicit, "codec", o.Codec, c.Codec)
	setValue(explicit, "headless", o.Headless, c.Headless)
	setValue(explicit, "translate", o.Translate, c.Translate)
	setValue(explicit, "duration", o.Duration, c.Duration)
}

// Validate checks the option values that would otherwise fail deep inside a run.
func (o *SquareOptions) Validate() error {
	switch *o.Mode {
	case ModeWindow, ModeRecord, ModeSnapshot:
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Mode == ModeWindow && *o.Headless {
		return fmt.Errorf("headless rendering has no window; use -mode record or -mode snapshot")
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.Mode == ModeRecord {
		if *o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("duration must be positive, got %v", *o.Duration)
		}
		if *o.Codec != "h264" && *o.Codec != "hevc" {
			return fmt.Errorf("unsupported codec %q", *o.Codec)
		}
	}
	return nil
}

func setValue[T any](explicit map[string]bool, name string, dst, src *T) {
	if src != nil && !explicit[name] {
		*dst = *src
	}
}
