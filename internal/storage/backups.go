package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/svanhoutte/stuiver/internal/model"
)

// BackupLimit caps the rolling backup log. Oldest snapshots are evicted
// first. This is a recovery net against destructive edits, not history.
const BackupLimit = 5

// Backup is one snapshot in the rolling log.
type Backup struct {
	TakenAt time.Time          `json:"takenAt"`
	State   *model.LedgerState `json:"state"`
}

// Backups returns the rolling log, most recent first. A malformed log
// is treated as empty.
func Backups(ctx context.Context, kv KV) ([]Backup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	raw, found, err := kv.Get(ctx, BackupsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups: %w", err)
	}
	if !found {
		return nil, nil
	}

	var backups []Backup
	if jsonErr := json.Unmarshal(raw, &backups); jsonErr != nil {
		slog.Warn("backup log is malformed, treating as empty", "error", jsonErr)
		return nil, nil
	}
	return backups, nil
}

// RotateBackup prepends a snapshot of state to the rolling log and
// evicts beyond BackupLimit.
func RotateBackup(ctx context.Context, kv KV, state *model.LedgerState, takenAt time.Time) error {
	backups, err := Backups(ctx, kv)
	if err != nil {
		return err
	}

	backups = append([]Backup{{TakenAt: takenAt, State: state.Clone()}}, backups...)
	if len(backups) > BackupLimit {
		backups = backups[:BackupLimit]
	}

	raw, err := json.Marshal(backups)
	if err != nil {
		return fmt.Errorf("failed to encode backups: %w", err)
	}
	return kv.Put(ctx, BackupsKey, raw)
}
