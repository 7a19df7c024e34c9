package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/danieljhkim/mapimp/internal/archive"
)

// Setting keys. Each can also be set through the environment as MAPIMP_<KEY>
// with dots replaced by underscores, e.g. MAPIMP_ARCHIVE_COMPRESSION.
const (
	KeyCompression       = "archive.compression"
	KeyLogLevel          = "log.level"
	KeyLogFile           = "log.file"
	KeyIncludeFolderName = "import.include_folder_name"
)

// Settings holds user-tunable behavior.
type Settings struct {
	// Compression is applied to files added to archives and to the index file
	Compression archive.Compression

	// LogLevel is the minimum level logged (debug, info, warn, error)
	LogLevel string

	// LogFile redirects logs from stderr to a file
	LogFile string

	// IncludeFolderName prefixes folder imports with the folder's own name
	IncludeFolderName bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Compression: archive.CompressionDeflate,
		LogLevel:    "warn",
	}
}

// LoadSettings reads settings from configFile, or from paths.Config when
// configFile is empty, layered over defaults and environment overrides.
// A missing default config file is not an error; a missing explicit one is.
func LoadSettings(paths *Paths, configFile string) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault(KeyCompression, defaults.Compression.String())
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyIncludeFolderName, false)

	v.SetEnvPrefix("MAPIMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configFile != ""
	if !explicit {
		configFile = paths.Config
		v.SetConfigType("toml")
	}
	v.SetConfigFile(configFile)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
		if explicit || !missing {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	compression, err := archive.ParseCompression(v.GetString(KeyCompression))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyCompression, err)
	}

	return &Settings{
		Compression:       compression,
		LogLevel:          v.GetString(KeyLogLevel),
		LogFile:           v.GetString(KeyLogFile),
		IncludeFolderName: v.GetBool(KeyIncludeFolderName),
	}, nil
}
