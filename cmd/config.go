package main

import (
	"errors"
	"strings"
	"time"

	"energy_tracker/internal/logger"

	"github.com/spf13/viper"
)

// config is the resolved process configuration.
type config struct {
	Port      string
	DBPath    string
	LogLevel  string
	LogFormat string

	SigningKey string
	TokenTTL   time.Duration

	MonitorDelay    time.Duration
	MonitorInterval time.Duration
	InboxCacheSize  int
	StreamInterval  time.Duration
	CORSOrigins     []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "energy.db")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("log.format", logger.FormatConsole)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("monitor.initial_delay", 5*time.Second)
	v.SetDefault("monitor.interval", 30*time.Second)
	v.SetDefault("inbox.cache_size", 256)
	v.SetDefault("ws.interval", time.Second)
	v.SetDefault("http.cors_origins", []string{})
}

// loadConfig reads configs/config.yml (or the file under dir) and applies
// ENERGY_* environment overrides, e.g. ENERGY_DB_PATH. A missing file is not
// an error; the defaults are used.
func loadConfig(v *viper.Viper, dir string) (config, error) {
	setDefaults(v)
	v.SetEnvPrefix("ENERGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, err
		}
	}

	return config{
		Port:            v.GetString("port"),
		DBPath:          v.GetString("db.path"),
		LogLevel:        v.GetString("log.level"),
		LogFormat:       v.GetString("log.format"),
		SigningKey:      v.GetString("auth.signing_key"),
		TokenTTL:        v.GetDuration("auth.token_ttl"),
		MonitorDelay:    v.GetDuration("monitor.initial_delay"),
		MonitorInterval: v.GetDuration("monitor.interval"),
		InboxCacheSize:  v.GetInt("inbox.cache_size"),
		StreamInterval:  v.GetDuration("ws.interval"),
		CORSOrigins:     v.GetStringSlice("http.cors_origins"),
	}, nil
}
