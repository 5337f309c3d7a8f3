// Package config loads optional application configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tmorand/promptctx/internal/utils"
)

const (
	// ConfigFileName is the configuration file looked up in the scan root.
	ConfigFileName = ".promptctx.yaml"
	// GlobalConfigDirectoryName is the home-directory folder holding the global file.
	GlobalConfigDirectoryName = ".promptctx"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	// RootDirectory is searched for ConfigFileName when no explicit path is given.
	RootDirectory string
	// ExplicitFilePath, when set, is loaded instead of the root-level file.
	ExplicitFilePath string
}

// ApplicationConfiguration holds file-provided defaults for the scan flags.
// Pointer fields distinguish "absent" from zero values during merging.
type ApplicationConfiguration struct {
	Output            string             `mapstructure:"output"`
	MaxBytes          *int64             `mapstructure:"max_bytes"`
	IncludeExtensions []string           `mapstructure:"include_ext"`
	ExcludeExtensions []string           `mapstructure:"exclude_ext"`
	ExcludeGlobs      []string           `mapstructure:"exclude_glob"`
	UseGitignore      *bool              `mapstructure:"use_gitignore"`
	Clipboard         *bool              `mapstructure:"clipboard"`
	Tokens            TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global and local
// files, with local values overriding global ones. Missing files are not errors;
// an unreadable or malformed file is, since the user asked for behavior the run
// cannot honor. An explicit file path replaces the root-level lookup and must
// exist.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, GlobalConfigDirectoryName, ConfigFileName)
		globalConfiguration, loadError := loadConfigurationFromPath(globalPath, false)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := options.ExplicitFilePath
	if localPath == "" {
		if options.RootDirectory == "" {
			return merged, nil
		}
		localPath = filepath.Join(options.RootDirectory, ConfigFileName)
	}
	localConfiguration, loadError := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	return merged.Merge(localConfiguration), nil
}

func loadConfigurationFromPath(configurationPath string, isExplicit bool) (ApplicationConfiguration, error) {
	pathInformation, statError := os.Stat(configurationPath)
	if statError != nil {
		if os.IsNotExist(statError) && !isExplicit {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", configurationPath, statError)
	}
	if pathInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", configurationPath)
	}

	configurationReader := viper.New()
	configurationReader.SetConfigFile(configurationPath)
	if readError := configurationReader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", configurationPath, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := configurationReader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", configurationPath, decodeError)
	}
	configuration.ExcludeGlobs = utils.DeduplicatePatterns(configuration.ExcludeGlobs)
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.MaxBytes != nil {
		result.MaxBytes = cloneInt64(override.MaxBytes)
	}
	if len(override.IncludeExtensions) > 0 {
		result.IncludeExtensions = append([]string{}, override.IncludeExtensions...)
	}
	if len(override.ExcludeExtensions) > 0 {
		result.ExcludeExtensions = append([]string{}, override.ExcludeExtensions...)
	}
	if len(override.ExcludeGlobs) > 0 {
		result.ExcludeGlobs = append([]string{}, utils.DeduplicatePatterns(override.ExcludeGlobs)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.Tokens.Enabled != nil {
		result.Tokens.Enabled = cloneBool(override.Tokens.Enabled)
	}
	if override.Tokens.Model != "" {
		result.Tokens.Model = override.Tokens.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
