package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/svanhoutte/stuiver/internal/model"
)

func TestRotateBackup_CapsAndOrders(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < BackupLimit+3; i++ {
		state := model.DefaultState(base)
		state.Transactions = append(state.Transactions, model.Transaction{
			ID: fmt.Sprintf("tx-%d", i), Kind: model.KindExpense,
			Date: "2024-03-01", Category: "Groceries", Amount: 100,
		})
		if err := RotateBackup(ctx, kv, state, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("RotateBackup %d: %v", i, err)
		}
	}

	backups, err := Backups(ctx, kv)
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(backups) != BackupLimit {
		t.Fatalf("got %d backups, want cap of %d", len(backups), BackupLimit)
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].TakenAt.After(backups[i-1].TakenAt) {
			t.Errorf("backups out of order at %d: %v after %v", i, backups[i].TakenAt, backups[i-1].TakenAt)
		}
	}
	// The newest snapshot is first; the oldest surviving one is the
	// (BackupLimit)th most recent, everything older was evicted.
	if got := backups[0].State.Transactions[0].ID; got != fmt.Sprintf("tx-%d", BackupLimit+2) {
		t.Errorf("most recent backup holds %s", got)
	}
}

func TestBackups_MalformedLogTreatedAsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Put(ctx, BackupsKey, []byte("][")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	backups, err := Backups(ctx, kv)
	if err != nil {
		t.Fatalf("Backups: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups from a malformed log, want 0", len(backups))
	}

	// Rotation must still succeed on top of the malformed log.
	if err := RotateBackup(ctx, kv, model.DefaultState(time.Now()), time.Now()); err != nil {
		t.Fatalf("RotateBackup over malformed log: %v", err)
	}
}
