package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TUTORIALS_DB_PATH.
const EnvPrefix = "TUTORIALS"

// Setting keys
const (
	KeyDBPath        = "db.path"
	KeyDBBusyTimeout = "db.busy_timeout"
	KeyLogFile       = "log.file"
	KeyLogMaxSizeMB  = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
	KeyLogMaxAgeDays = "log.max_age_days"
	KeyLogCompress   = "log.compress"
)

// DefaultDatabasePath is used when neither flag, env nor config file set db.path.
const DefaultDatabasePath = "./tutorials.db"

// Source reads settings from environment variables and an optional config file
type Source struct {
	v *viper.Viper
}

var _ SettingsGetter = (*Source)(nil)

// NewSource creates a settings source. configFile may be empty.
func NewSource(configFile string) (*Source, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyDBPath, DefaultDatabasePath)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("Loaded config file")
	}

	return &Source{v: v}, nil
}

// GetSetting returns the setting for key, or "" when unset
func (s *Source) GetSetting(key string) (string, error) {
	return s.v.GetString(key), nil
}

// Set overrides a setting for the lifetime of the process, e.g. from a CLI flag
func (s *Source) Set(key, value string) {
	s.v.Set(key, value)
}

// Watch calls fn whenever the config file changes on disk. It is a no-op
// when no config file was loaded.
func (s *Source) Watch(fn func(*Loader)) {
	if s.v.ConfigFileUsed() == "" {
		return
	}
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		log.Info().Str("file", e.Name).Msg("Config file changed")
		fn(NewLoader(s))
	})
	s.v.WatchConfig()
}
