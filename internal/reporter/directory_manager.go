package reporter

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// DirectoryManager manages creating directories for reports
type DirectoryManager struct {
	logger zerolog.Logger
}

// NewDirectoryManager creates a new DirectoryManager
func NewDirectoryManager(logger zerolog.Logger) *DirectoryManager {
	return &DirectoryManager{
		logger: logger,
	}
}

// EnsureOutputDirectories ensures output directories are created
func (dm *DirectoryManager) EnsureOutputDirectories(outputDir string) error {
	if outputDir == "" || outputDir == "." {
		return nil
	}
	if err := dm.createDirectory(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}
	return nil
}

// createDirectory creates directory with standard permissions
func (dm *DirectoryManager) createDirectory(path string) error {
	if err := os.MkdirAll(path, DirPermissions); err != nil {
		dm.logger.Error().Err(err).Str("path", path).Msg("Failed to create directory")
		return err
	}

	dm.logger.Debug().Str("path", path).Msg("Directory created successfully")
	return nil
}
