package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".altoro"
	envPrefix  = "ALTORO"

	targetsFile = "targets.toml"

	KeyTarget      = "target"
	KeyBaseURL     = "base_url"
	KeyTargetsPath = "targets.path"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyHTTPTimeout = "http.timeout"
)

type Config struct {
	Target      string
	BaseURL     string
	TargetsPath string
	LogLevel    string
	LogFormat   string
	// HTTPTimeout of zero leaves the transport defaults in charge.
	HTTPTimeout time.Duration
}

// Load reads ~/.altoro/config.toml when present and layers ALTORO_* environment
// variables over it. A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, configDir))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTarget, "testfire")
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyTargetsPath, filepath.Join(homeDir, configDir, targetsFile))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyHTTPTimeout, "0s")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	timeout := v.GetDuration(KeyHTTPTimeout)
	if timeout < 0 {
		return Config{}, fmt.Errorf("http timeout must not be negative, got %s", timeout)
	}

	targetsPath := v.GetString(KeyTargetsPath)
	if targetsPath == "" {
		return Config{}, errors.New("targets path is empty")
	}
	targetsPath, err = filepath.Abs(targetsPath)
	if err != nil {
		return Config{}, fmt.Errorf("resolve targets path: %w", err)
	}

	return Config{
		Target:      v.GetString(KeyTarget),
		BaseURL:     v.GetString(KeyBaseURL),
		TargetsPath: filepath.Clean(targetsPath),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		HTTPTimeout: timeout,
	}, nil
}
