package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/evhjem/hubdrive/internal/errors"
)

const (
	DefaultLogLevel = "info"

	defaultRate            = 100
	defaultDeviceName      = "Technic Move"
	defaultStickDeadzone   = 8
	defaultTriggerDeadzone = 5
	defaultSteeringLimit   = 80
	defaultWindowSeconds   = 120
	defaultListenAddr      = ":8000"
	defaultSessionDB       = "/var/lib/hubdrive/sessions.db"
)

type Config struct {
	Rate            int    `mapstructure:"rate"`
	DeviceName      string `mapstructure:"device"`
	StickDeadzone   int    `mapstructure:"stick_deadzone"`
	TriggerDeadzone int    `mapstructure:"trigger_deadzone"`
	SteeringLimit   int    `mapstructure:"steering_limit"`
	WindowSeconds   int    `mapstructure:"window_seconds"`
	ListenAddr      string `mapstructure:"listen"`
	Simulate        bool   `mapstructure:"simulate"`
	Telemetry       bool   `mapstructure:"telemetry"`
	TelemetryDB     string `mapstructure:"database"`
	LogLevel        string `mapstructure:"log_level"`
}

func Load() (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	setDefaults(v)

	fs := pflag.NewFlagSet("hubdrive", pflag.ContinueOnError)
	fs.Int("rate", defaultRate, "Control loop poll rate in Hz")
	fs.String("device", defaultDeviceName, "Advertised BLE name of the hub")
	fs.Int("stick-deadzone", defaultStickDeadzone, "Stick deadzone (percent of travel)")
	fs.Int("trigger-deadzone", defaultTriggerDeadzone, "Trigger deadzone (percent of travel)")
	fs.Int("window-seconds", defaultWindowSeconds, "Rolling power average window in seconds")
	fs.String("listen", defaultListenAddr, "Telemetry websocket listen address")
	fs.Bool("simulate", false, "Skip the BLE connection and log frames instead")
	fs.Bool("telemetry", false, "Record drive sessions to the session database")
	fs.String("database", defaultSessionDB, "Path to the session database")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	// Explicit config path via environment wins; otherwise search the
	// usual locations for hubdrive.toml.
	v.SetConfigType("toml")
	if path := os.Getenv("HUBDRIVE_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hubdrive")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err).
				WithMessage("Failed to read config file")
		}
	}

	// Flags set on the command line override file values.
	fs.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rate", defaultRate)
	v.SetDefault("device", defaultDeviceName)
	v.SetDefault("stick_deadzone", defaultStickDeadzone)
	v.SetDefault("trigger_deadzone", defaultTriggerDeadzone)
	v.SetDefault("steering_limit", defaultSteeringLimit)
	v.SetDefault("window_seconds", defaultWindowSeconds)
	v.SetDefault("listen", defaultListenAddr)
	v.SetDefault("simulate", false)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", defaultSessionDB)
	v.SetDefault("log_level", DefaultLogLevel)
}

func (c *Config) validate() error {
	errFactory := errors.New()

	if c.Rate <= 0 || c.Rate > 1000 {
		return errFactory.WithData(errors.ErrInvalidRate, c.Rate)
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}

// IsDebug returns whether debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsVerbose returns whether info-level logging is enabled
func (c *Config) IsVerbose() bool {
	return c.LogLevel == "debug" || c.LogLevel == "info"
}
