package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/crema/pkg/domain"
)

// DefaultOutputDir is where translated profiles go when no output is given.
const DefaultOutputDir = "TranslatedToGaggimate"

// ErrNotFound is returned when an input profile does not exist.
var ErrNotFound = errors.New("profile file not found")

// ErrNoProfiles is returned when a batch directory holds no JSON files.
var ErrNoProfiles = errors.New("no JSON profiles found")

// Store reads source profiles from and writes translated profiles to the
// local filesystem.
type Store struct {
	OutputDir string
}

// New creates a new Store. If outputDir is empty, it defaults to DefaultOutputDir.
func New(outputDir string) *Store {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &Store{OutputDir: outputDir}
}

// Read returns the raw content of a source profile.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return data, nil
}

// OutputPath derives where the translation of input is written.
// An explicit output that names an existing directory (or ends in a path
// separator) receives the input's base name; any other explicit output is
// used as is. Without one the file lands in the store's output directory.
func (s *Store) OutputPath(input, output string) string {
	base := filepath.Base(input)
	if output == "" {
		return filepath.Join(s.OutputDir, base)
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") {
		return filepath.Join(output, base)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, base)
	}
	return output
}

// Save writes doc as indented JSON atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(destPath string, doc *domain.TargetProfile) error {
	if destPath == "" {
		return fmt.Errorf("destination path cannot be empty")
	}
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	data = append(data, '\n')

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Close before rename (Windows cannot rename open files).
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing profile for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Discover lists the *.json files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoProfiles, dir)
	}
	sort.Strings(files)
	return files, nil
}
