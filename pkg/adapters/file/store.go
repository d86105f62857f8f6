// Package file implements ports.SnapshotStore on the local filesystem,
// storing one JSON document per group.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/driftkit/sway/pkg/domain"
)

// Store persists snapshots as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath. If basePath is empty, it defaults
// to ".sway/snapshots".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".sway", "snapshots")
	}
	return &Store{BasePath: basePath}
}

// Save writes the snapshot atomically: a temp file in the same directory is
// written, fsynced, closed, and renamed over the destination.
func (s *Store) Save(ctx context.Context, groupID string, snap *domain.Snapshot) error {
	if groupID == "" {
		return fmt.Errorf("groupID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure snapshot directory: %w", err)
	}

	destPath := s.path(groupID)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Temp file lives in the target directory so the rename stays on a
	// single filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+groupID+"-*.json")
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
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename cannot replace an existing file on Windows; remove first.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing snapshot for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}

	return nil
}

// Load reads the latest snapshot stored for the group.
func (s *Store) Load(ctx context.Context, groupID string) (*domain.Snapshot, error) {
	if groupID == "" {
		return nil, fmt.Errorf("groupID cannot be empty")
	}

	data, err := os.ReadFile(s.path(groupID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// Delete removes the group's snapshot file. Missing files are not an error.
func (s *Store) Delete(ctx context.Context, groupID string) error {
	if groupID == "" {
		return fmt.Errorf("groupID cannot be empty")
	}

	err := os.Remove(s.path(groupID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}

// List returns the IDs of every group with a stored snapshot.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			ids = append(ids, name[:len(name)-len(".json")])
		}
	}
	return ids, nil
}

func (s *Store) path(groupID string) string {
	return filepath.Join(s.BasePath, groupID+".json")
}
