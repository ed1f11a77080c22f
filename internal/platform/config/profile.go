package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends a profile can select.
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Profile is the terminal console configuration kept in ~/.rbconsole/config.yaml.
type Profile struct {
	APIURL       string        `yaml:"api_url"`
	Storage      string        `yaml:"storage"`
	StorageDSN   string        `yaml:"storage_dsn,omitempty"`
	Namespace    string        `yaml:"namespace,omitempty"`
	Theme        string        `yaml:"theme,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	DefaultCloud string        `yaml:"default_cloud,omitempty"`
}

// DefaultProfile is used when no config file exists yet.
func DefaultProfile() *Profile {
	return &Profile{
		APIURL:    DefaultUpstreamURL,
		Storage:   StorageFile,
		Namespace: "default",
		Timeout:   30 * time.Second,
	}
}

// Validate checks the fields a console session cannot start without.
func (p *Profile) Validate() error {
	if p.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	switch p.Storage {
	case StorageFile, StorageMemory:
	case StorageRedis, StoragePostgres:
		if p.StorageDSN == "" {
			return fmt.Errorf("storage %q requires storage_dsn", p.Storage)
		}
	default:
		return fmt.Errorf("unknown storage %q", p.Storage)
	}
	return nil
}

// Dir returns the console state directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".rbconsole")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultProfilePath is ~/.rbconsole/config.yaml.
func DefaultProfilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadProfile reads path, returning defaults when the file does not exist.
// Missing fields are filled from the defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultProfile(), nil
	}
	if err != nil {
		return nil, err
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Storage == "" {
		p.Storage = StorageFile
	}
	if p.Namespace == "" {
		p.Namespace = "default"
	}
	return p, nil
}

// SaveProfile writes p to path with owner-only permissions.
func SaveProfile(path string, p *Profile) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
