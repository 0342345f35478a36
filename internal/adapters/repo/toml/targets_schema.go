package toml

import "fmt"

const currentTargetsSchemaVersion = 1

type targetsFileSchema struct {
	Version int            `toml:"version"`
	Targets []targetSchema `toml:"targets"`
}

func (s *targetsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentTargetsSchemaVersion
	}
}

func (s targetsFileSchema) validateVersion() error {
	if s.Version > currentTargetsSchemaVersion {
		return fmt.Errorf("unsupported targets schema version %d (current %d)", s.Version, currentTargetsSchemaVersion)
	}

	return nil
}

type targetSchema struct {
	Name         string `toml:"name"`
	BaseURL      string `toml:"base_url"`
	LoginPath    string `toml:"login_path,omitempty"`
	LandingPath  string `toml:"landing_path,omitempty"`
	TransferPath string `toml:"transfer_path,omitempty"`
	CookieName   string `toml:"cookie_name,omitempty"`
}
