// Package config loads the tool configuration from an optional YAML
// file and APT_WEBINDEX_* environment variables. The environment path
// matters because the CGI invocation carries no command-line flags.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/debamax/apt-webindex/internal/models"
)

// Config holds the run configuration.
type Config struct {
	// Root is the repository root containing dists/ and pool/.
	Root string `mapstructure:"root"`
	// Component is the archive component to index, e.g. "main".
	Component string `mapstructure:"component"`
	// FastArch is the architecture whose builds land first; it feeds
	// the delayed-build hint.
	FastArch string `mapstructure:"fastArch"`
	// Title of the generated page.
	Title string `mapstructure:"title"`
	// Keyring is an optional public keyring used to verify each
	// distribution's InRelease signature.
	Keyring string `mapstructure:"keyring"`
}

// Load reads the configuration. path may be empty, in which case
// apt-webindex.yaml is searched in the working directory and /etc; a
// missing config file is fine, defaults and environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("root", ".")
	v.SetDefault("component", "main")
	v.SetDefault("fastArch", "amd64")
	v.SetDefault("title", "aptly-webindex")

	v.BindEnv("root", "APT_WEBINDEX_ROOT")
	v.BindEnv("component", "APT_WEBINDEX_COMPONENT")
	v.BindEnv("fastArch", "APT_WEBINDEX_FAST_ARCH")
	v.BindEnv("title", "APT_WEBINDEX_TITLE")
	v.BindEnv("keyring", "APT_WEBINDEX_KEYRING")

	if path != "" {
		filename := filepath.Base(path)
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, &models.IndexError{
				Type: models.ErrInvalidConfig,
				Err:  err,
			}
		}
	} else {
		v.SetConfigName("apt-webindex")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc")
		if err := v.ReadInConfig(); err != nil {
			// Only a present-but-broken config file is an error.
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, &models.IndexError{
					Type: models.ErrInvalidConfig,
					Err:  err,
				}
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, &models.IndexError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unable to decode into config struct: %w", err),
		}
	}

	if conf.Root == "" {
		return nil, &models.IndexError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("root must not be empty"),
		}
	}

	return &conf, nil
}
