package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"checkels_casino/internal/domain"
)

func TestMemorySnapshotStoreRoundTrip(t *testing.T) {
	store := NewMemorySnapshotStore()
	ctx := context.Background()

	snap := domain.TreeSessionSnapshot{
		Accrued:      1.25,
		SessionStart: time.Now().Add(-time.Hour).Truncate(time.Second),
		LastLeave:    time.Now().Truncate(time.Second),
	}

	if err := store.Save(ctx, 42, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, 42)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.Accrued != snap.Accrued || !got.SessionStart.Equal(snap.SessionStart) {
		t.Fatalf("loaded %+v; want %+v", got, snap)
	}

	if err := store.Clear(ctx, 42); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = store.Load(ctx, 42)
	if err != nil || got != nil {
		t.Fatalf("after clear: snap=%v err=%v; want nil, nil", got, err)
	}
}

func TestMemorySnapshotStoreMissingUser(t *testing.T) {
	store := NewMemorySnapshotStore()
	got, err := store.Load(context.Background(), 7)
	if err != nil || got != nil {
		t.Fatalf("missing user: snap=%v err=%v; want nil, nil", got, err)
	}
}

func TestDecodeSnapshotToleratesCorruption(t *testing.T) {
	if got := decodeSnapshot([]byte(`{not json`)); got != nil {
		t.Fatalf("corrupt payload decoded to %+v; want nil", got)
	}
	if got := decodeSnapshot([]byte(`{}`)); got != nil {
		t.Fatalf("zero-value payload decoded to %+v; want nil", got)
	}

	valid, _ := json.Marshal(domain.TreeSessionSnapshot{
		Accrued:      0.5,
		SessionStart: time.Now(),
		LastLeave:    time.Now(),
	})
	if got := decodeSnapshot(valid); got == nil || got.Accrued != 0.5 {
		t.Fatalf("valid payload decoded to %+v", got)
	}
}
