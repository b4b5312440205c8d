package providers

import (
	"path/filepath"
	"strings"
	"transcript/internal/structures"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/viper"
)

const AppName = "transcript"

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	filename := filepath.Base(configPath)
	v.AddConfigPath(filepath.Dir(configPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	return v
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := newViper(flags.ConfigPath)

	v.SetDefault("timezone", "Local")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("threading.orphanPolicy", "drop")

	v.BindEnv("logger.level", "TRANSCRIPT_LOG_LEVEL")
	v.BindEnv("outputDir", "TRANSCRIPT_OUTPUT_DIR")
	v.BindEnv("timezone", "TRANSCRIPT_TIMEZONE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, goerr.Wrap(err, "unable to read config", goerr.V("path", flags.ConfigPath))
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, goerr.Wrap(err, "unable to decode into config struct", goerr.V("path", flags.ConfigPath))
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	return &conf, nil
}

// SaveUserColors rewrites the config file with the current color table.
// A fresh viper instance is used so defaults and env overrides are not
// baked into the file.
func SaveUserColors(conf *structures.Config) error {
	v := newViper(conf.Path)
	if err := v.ReadInConfig(); err != nil {
		return goerr.Wrap(err, "unable to re-read config", goerr.V("path", conf.Path))
	}

	entries := make([]map[string]any, 0, len(conf.UserColors))
	for _, uc := range conf.UserColors {
		entries = append(entries, map[string]any{"id": uc.ID, "color": uc.Color})
	}
	v.Set("userColors", entries)

	if err := v.WriteConfigAs(conf.Path); err != nil {
		return goerr.Wrap(err, "unable to write config", goerr.V("path", conf.Path))
	}
	return nil
}
