package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/ocictl"
	projectConfigDir = ".ocictl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the ocictl configuration by layering default, user,
// project, and environment settings (later layers win).
func LoadConfig() (Config, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional; keep going.
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	// 4. Environment overrides
	config = applyEnvOverrides(config)

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.OCI.ConfigFile != "" {
		merged.OCI.ConfigFile = overlay.OCI.ConfigFile
	}
	if overlay.OCI.Profile != "" {
		merged.OCI.Profile = overlay.OCI.Profile
	}
	if overlay.OCI.CompartmentID != "" {
		merged.OCI.CompartmentID = overlay.OCI.CompartmentID
	}

	if overlay.CLI.Binary != "" {
		merged.CLI.Binary = overlay.CLI.Binary
	}
	if len(overlay.CLI.Env) > 0 {
		if merged.CLI.Env == nil {
			merged.CLI.Env = make(map[string]string, len(overlay.CLI.Env))
		}
		for k, v := range overlay.CLI.Env {
			merged.CLI.Env[k] = v
		}
	}

	if overlay.Server.Transport != "" {
		merged.Server.Transport = overlay.Server.Transport
	}
	if overlay.Server.Host != "" {
		merged.Server.Host = overlay.Server.Host
	}
	if overlay.Server.Port != 0 {
		merged.Server.Port = overlay.Server.Port
	}

	return merged
}

// applyEnvOverrides layers environment variables over the file-based
// configuration. Environment always wins so that one-off invocations can
// retarget a compartment without editing files.
func applyEnvOverrides(config Config) Config {
	if v := os.Getenv(EnvCompartmentID); v != "" {
		config.OCI.CompartmentID = v
	}
	if v := os.Getenv(EnvConfigFile); v != "" {
		config.OCI.ConfigFile = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		config.OCI.Profile = v
	}
	return config
}
