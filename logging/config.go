package logging

// Format selects how a channel renders records.
type Format string

const (
	// FormatPlain renders "timestamp - level - message" lines.
	FormatPlain Format = "plain"

	// FormatStructured renders key=value pairs including all fields.
	FormatStructured Format = "structured"

	// FormatJSON renders one JSON object per record.
	FormatJSON Format = "json"
)

// ChannelConfig overrides the router defaults for one channel.
type ChannelConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warning error critical"`
	Format string `yaml:"format" validate:"omitempty,oneof=plain structured json"`
}

// Config configures the router.
type Config struct {
	// Dir is the directory holding the per-channel log files.
	Dir string `yaml:"dir"`

	// Level is the default channel threshold. Sink floors still apply on
	// top of it: console sinks never emit below info, file sinks never
	// below debug.
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warning error critical"`

	// Format is the default channel format.
	Format string `yaml:"format" validate:"omitempty,oneof=plain structured json"`

	// Console enables the stdout sink shared by all channels.
	Console bool `yaml:"console"`

	// Channels overrides level/format per channel name.
	Channels map[string]ChannelConfig `yaml:"channels"`

	// RotateMaxSizeMB and RotateBackups configure the audit archive sink.
	RotateMaxSizeMB int `yaml:"rotate_max_size_mb" validate:"omitempty,min=1"`
	RotateBackups   int `yaml:"rotate_backups" validate:"omitempty,min=0"`
}

// DefaultConfig returns the configuration used when none is supplied:
// logs under ./logs, debug threshold, structured files with console echo.
func DefaultConfig() Config {
	return Config{
		Dir:             "logs",
		Level:           "debug",
		Format:          "structured",
		Console:         true,
		RotateMaxSizeMB: 10,
		RotateBackups:   5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()

	if c.Dir == "" {
		c.Dir = d.Dir
	}
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.RotateMaxSizeMB == 0 {
		c.RotateMaxSizeMB = d.RotateMaxSizeMB
	}
	if c.RotateBackups == 0 {
		c.RotateBackups = d.RotateBackups
	}

	return c
}

// channelLevel returns the effective threshold for a channel.
func (c Config) channelLevel(name string) Level {
	if override, ok := c.Channels[name]; ok && override.Level != "" {
		if lvl, err := ParseLevel(override.Level); err == nil {
			return lvl
		}
	}

	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return DebugLevel
	}

	return lvl
}

// channelFormat returns the effective format for a channel.
func (c Config) channelFormat(name string) Format {
	if override, ok := c.Channels[name]; ok && override.Format != "" {
		return Format(override.Format)
	}

	if c.Format != "" {
		return Format(c.Format)
	}

	return FormatStructured
}
