package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode              string        `mapstructure:"mode"`
	Port              int           `mapstructure:"port"`
	Provider          string        `mapstructure:"provider"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	ReadLimit         int64         `mapstructure:"read_limit"`
	PingPeriod        time.Duration `mapstructure:"ping_period"`
	Secret            string        `mapstructure:"secret"`

	Sink SinkConfig `mapstructure:"sink"`
}

// SinkConfig feeds the SDK metadata sink. Empty fields are simply not
// answered by the handler, so the binding falls back to its documented
// defaults for them.
type SinkConfig struct {
	AppName      string `mapstructure:"app_name"`
	AppVersion   string `mapstructure:"app_version"`
	AppDeveloper string `mapstructure:"app_developer"`
	AppContact   string `mapstructure:"app_contact"`
	ContentDir   string `mapstructure:"content_dir"`
	Manufacturer string `mapstructure:"manufacturer"`
	Model        string `mapstructure:"model"`
	SerialNumber string `mapstructure:"serial_number"`
	MacAddress   string `mapstructure:"mac_address"`
	DeviceIP     string `mapstructure:"device_ip"`
	FirmwareVer  string `mapstructure:"firmware_version"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8000)
	v.SetDefault("provider", "loopback")
	v.SetDefault("heartbeat_interval", "150ms")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("sink.app_name", "zrcbridge")
	v.SetDefault("sink.app_version", "1.0.0")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
