package common

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // Maximum file size to read (0 = no limit)
}

// FileWriteOptions configures file writing behavior
type FileWriteOptions struct {
	CreateDirs  bool        // Whether to create parent directories
	Permissions fs.FileMode // File permissions
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{
		MaxSize: 50 * 1024 * 1024,
	}
}

// DefaultFileWriteOptions returns default file writing options
func DefaultFileWriteOptions() FileWriteOptions {
	return FileWriteOptions{
		CreateDirs:  true,
		Permissions: 0644,
	}
}

// FileManager provides file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a regular file exists at path
func (fm *FileManager) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadFile reads a whole file. Files above opts.MaxSize are rejected rather
// than truncated.
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapErrorf(ErrNotFound, "file %s", path)
		}
		return nil, WrapError(err, "failed to stat file: "+path)
	}
	if info.IsDir() {
		return nil, NewValidationError("path", path, "is a directory")
	}
	if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
		return nil, NewValidationError("path", path, "file exceeds maximum readable size")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapError(err, "failed to read file: "+path)
	}
	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File read")
	return data, nil
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFile writes data to a file with the given options
func (fm *FileManager) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	if opts.CreateDirs {
		if err := fm.EnsureDirectory(filepath.Dir(path), 0755); err != nil {
			return WrapError(err, "failed to create parent directories for: "+path)
		}
	}

	perm := opts.Permissions
	if perm == 0 {
		perm = 0644
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return WrapError(err, "failed to write file: "+path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written successfully")
	return nil
}
