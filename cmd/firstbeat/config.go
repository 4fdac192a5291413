package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultBaseURL = "https://api.firstbeat.com"

// cliCredentials is the resolved credential set for one invocation.
// Precedence per field: flag, then environment variable, then config file,
// then default.
type cliCredentials struct {
	API          string `yaml:"api"`
	ConsumerID   string `yaml:"consumer_id"`
	SharedSecret string `yaml:"shared_secret"`
}

// resolveCredentials merges flags, environment, and the optional YAML config
// file into one credential set. The config file is ~/.firstbeat.yaml unless
// --config names another path; a missing default file is not an error, a
// missing explicit one is.
func resolveCredentials() (*cliCredentials, error) {
	fileCreds, err := loadConfigFile()
	if err != nil {
		return nil, err
	}

	creds := &cliCredentials{
		API:          firstNonEmpty(apiURL, os.Getenv("FIRSTBEAT_API"), fileCreds.API, defaultBaseURL),
		ConsumerID:   firstNonEmpty(consumerID, os.Getenv("FIRSTBEAT_CONSUMER_ID"), fileCreds.ConsumerID),
		SharedSecret: firstNonEmpty(sharedSecret, os.Getenv("FIRSTBEAT_SHARED_SECRET"), fileCreds.SharedSecret),
	}
	return creds, nil
}

func loadConfigFile() (*cliCredentials, error) {
	path := configFile
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return &cliCredentials{}, nil
		}
		path = filepath.Join(home, ".firstbeat.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cliCredentials{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var creds cliCredentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &creds, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
