package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content Config) string {
	t.Helper()
	tempFilePath := filepath.Join(dir, filename)
	data, err := yaml.Marshal(&content)
	assert.NoError(t, err)
	err = os.WriteFile(tempFilePath, data, 0644)
	assert.NoError(t, err)
	return tempFilePath
}

// mockConfigPaths points the loader at files inside tempDir and restores the
// original lookups when the test finishes.
func mockConfigPaths(t *testing.T, userPath, projectPath string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})
	getUserConfigPath = func() (string, error) { return userPath, nil }
	getProjectConfigPath = func() (string, error) { return projectPath, nil }
}

// clearEnv blanks the OCI environment overrides so tests are insulated from
// the developer's shell. Empty values are treated as unset by the loader.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvCompartmentID, "")
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvProfile, "")
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()
	clearEnv(t)
	mockConfigPaths(t,
		filepath.Join(tempDir, "non-existent-user-config.yaml"),
		filepath.Join(tempDir, "non-existent-project-config.yaml"),
	)

	loadedConfig, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.Equal(t, "oci", loadedConfig.CLI.Binary)
	assert.Equal(t, TransportStdio, loadedConfig.Server.Transport)
	assert.Equal(t, 8090, loadedConfig.Server.Port)
}

func TestLoadConfig_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	clearEnv(t)

	userConfig := Config{
		OCI: OCISettings{
			Profile:       "HOME",
			CompartmentID: "ocid1.compartment.oc1..user",
		},
		Server: ServerConfig{Port: 9000},
	}
	userPath := createTempConfigFile(t, tempDir, "user.yaml", userConfig)
	mockConfigPaths(t, userPath, filepath.Join(tempDir, "no-project.yaml"))

	loadedConfig, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "HOME", loadedConfig.OCI.Profile)
	assert.Equal(t, "ocid1.compartment.oc1..user", loadedConfig.OCI.CompartmentID)
	assert.Equal(t, 9000, loadedConfig.Server.Port)
	// Untouched fields keep their defaults.
	assert.Equal(t, "oci", loadedConfig.CLI.Binary)
	assert.Equal(t, "localhost", loadedConfig.Server.Host)
}

func TestLoadConfig_ProjectOverridesUser(t *testing.T) {
	tempDir := t.TempDir()
	clearEnv(t)

	userConfig := Config{
		OCI: OCISettings{CompartmentID: "ocid1.compartment.oc1..user"},
	}
	projectConfig := Config{
		OCI: OCISettings{CompartmentID: "ocid1.compartment.oc1..project"},
		CLI: CLISettings{Binary: "/usr/local/bin/oci"},
	}
	userPath := createTempConfigFile(t, tempDir, "user.yaml", userConfig)
	projectPath := createTempConfigFile(t, tempDir, "project.yaml", projectConfig)
	mockConfigPaths(t, userPath, projectPath)

	loadedConfig, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "ocid1.compartment.oc1..project", loadedConfig.OCI.CompartmentID)
	assert.Equal(t, "/usr/local/bin/oci", loadedConfig.CLI.Binary)
}

func TestLoadConfig_EnvOverridesFiles(t *testing.T) {
	tempDir := t.TempDir()
	clearEnv(t)

	projectConfig := Config{
		OCI: OCISettings{CompartmentID: "ocid1.compartment.oc1..project"},
	}
	projectPath := createTempConfigFile(t, tempDir, "project.yaml", projectConfig)
	mockConfigPaths(t, filepath.Join(tempDir, "no-user.yaml"), projectPath)

	t.Setenv(EnvCompartmentID, "ocid1.compartment.oc1..env")
	t.Setenv(EnvProfile, "CI")

	loadedConfig, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "ocid1.compartment.oc1..env", loadedConfig.OCI.CompartmentID)
	assert.Equal(t, "CI", loadedConfig.OCI.Profile)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	clearEnv(t)

	badPath := filepath.Join(tempDir, "bad.yaml")
	assert.NoError(t, os.WriteFile(badPath, []byte("oci: [not a mapping"), 0644))
	mockConfigPaths(t, badPath, filepath.Join(tempDir, "no-project.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestMergeConfigs_CLIEnvMerges(t *testing.T) {
	base := GetDefaultConfig()
	base.CLI.Env = map[string]string{"A": "1"}

	overlay := Config{CLI: CLISettings{Env: map[string]string{"B": "2"}}}

	merged := mergeConfigs(base, overlay)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, merged.CLI.Env)
}
