package config

// StorageConfig defines configuration for run history storage
type StorageConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required_if=Enabled true"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Enabled:    false,
		SQLitePath: DefaultStorageSQLitePath,
	}
}
