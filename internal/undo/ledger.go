package undo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"chanctl/pkg/logging"
)

// ErrNoSnapshot is returned when no stored snapshot matches a lookup.
var ErrNoSnapshot = errors.New("no undo snapshot found")

// timestampLayout keeps file names sortable and shell-friendly.
const timestampLayout = "20060102_150405"

// Ledger persists snapshots as JSON files under Dir.
type Ledger struct {
	Dir string
}

// Info describes one stored snapshot without holding its channel payload.
type Info struct {
	Path        string
	Instance    string
	APIType     string
	Kind        string
	OperationID string
	TakenAt     time.Time
	Channels    int
}

// Save persists the snapshot and returns its path. An error here must abort
// the operation before dispatch.
func (l *Ledger) Save(snap *Snapshot) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating undo directory %s: %w", l.Dir, err)
	}

	name := fmt.Sprintf("undo_%s_%s_%s.json", snap.Instance, snap.Kind, snap.TakenAt.Format(timestampLayout))
	path := filepath.Join(l.Dir, name)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("persisting snapshot %s: %w", path, err)
	}

	logging.Info("Undo", "Snapshot of %d channels saved to %s", len(snap.Channels), path)
	return path, nil
}

// Load reads one snapshot file.
func (l *Ledger) Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// List returns the stored snapshots for an instance, newest first. An empty
// instance lists everything.
func (l *Ledger) List(instance string) ([]Info, error) {
	paths, err := filepath.Glob(filepath.Join(l.Dir, "undo_*.json"))
	if err != nil {
		return nil, err
	}

	var infos []Info
	for _, path := range paths {
		snap, err := l.Load(path)
		if err != nil {
			// A corrupt audit file must not hide the healthy ones.
			logging.Warn("Undo", "Skipping unreadable snapshot %s: %v", path, err)
			continue
		}
		if instance != "" && snap.Instance != instance {
			continue
		}
		infos = append(infos, Info{
			Path:        path,
			Instance:    snap.Instance,
			APIType:     snap.APIType,
			Kind:        snap.Kind,
			OperationID: snap.OperationID,
			TakenAt:     snap.TakenAt,
			Channels:    len(snap.Channels),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].TakenAt.After(infos[j].TakenAt) })
	return infos, nil
}

// Latest returns the newest snapshot for (instance, kind). An empty kind
// matches any operation kind.
func (l *Ledger) Latest(instance, kind string) (*Snapshot, error) {
	infos, err := l.List(instance)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if kind == "" || info.Kind == kind {
			return l.Load(info.Path)
		}
	}
	return nil, fmt.Errorf("%w for instance %q", ErrNoSnapshot, instance)
}

// Prune removes the oldest snapshots of an instance beyond keep. Zero or
// negative keep disables pruning.
func (l *Ledger) Prune(instance string, keep int) error {
	if keep <= 0 {
		return nil
	}
	infos, err := l.List(instance)
	if err != nil {
		return err
	}
	for _, info := range infos[min(keep, len(infos)):] {
		if err := os.Remove(info.Path); err != nil {
			return fmt.Errorf("pruning snapshot %s: %w", info.Path, err)
		}
		logging.Debug("Undo", "Pruned old snapshot %s", info.Path)
	}
	return nil
}
