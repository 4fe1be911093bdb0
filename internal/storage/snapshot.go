package storage

import (
	"context"
	"encoding/json"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// SeedFunc builds the initial snapshot for a schema version.
type SeedFunc func(schemaVersion int) *core.Snapshot

// SnapshotStore reads and writes the guest snapshot under a single key.
// Storage failures never reach the caller: reads degrade to "absent" and
// writes are dropped after a warning.
type SnapshotStore struct {
	kv     KeyValue
	key    string
	seed   SeedFunc
	logger *log.Logger
}

func NewSnapshotStore(kv KeyValue, key string, seed SeedFunc, logger *log.Logger) *SnapshotStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &SnapshotStore{
		kv:     kv,
		key:    key,
		seed:   seed,
		logger: logger.WithComponent(log.ComponentStorage),
	}
}

// Load returns the stored snapshot, or false when it is missing, unreadable or
// malformed.
func (s *SnapshotStore) Load(ctx context.Context) (*core.Snapshot, bool) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read snapshot", log.FieldKey, s.key, log.FieldError, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var snap core.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.WarnContext(ctx, "Discarding malformed snapshot",
			log.FieldKey, s.key, log.FieldError, err, "error_type", log.ErrorTypeDecode)
		return nil, false
	}
	return &snap, true
}

// Save writes snap. Failures, quota included, are logged and swallowed.
func (s *SnapshotStore) Save(ctx context.Context, snap *core.Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to encode snapshot", log.FieldError, err)
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.logger.WarnContext(ctx, "Failed to persist snapshot",
			log.FieldKey, s.key, log.FieldBytes, len(raw), log.FieldError, err,
			"error_type", log.ErrorTypeStorage)
	}
}

// Initialize returns the stored snapshot when it is initialized at
// schemaVersion. Anything else is replaced by freshly seeded data, which is
// saved before returning.
func (s *SnapshotStore) Initialize(ctx context.Context, schemaVersion int) *core.Snapshot {
	if snap, ok := s.Load(ctx); ok {
		if snap.Initialized && snap.SchemaVersion == schemaVersion {
			return snap
		}
		s.logger.InfoContext(ctx, "Reseeding guest store",
			log.FieldSchema, snap.SchemaVersion, "want_schema_version", schemaVersion)
	}

	var snap *core.Snapshot
	if s.seed != nil {
		snap = s.seed(schemaVersion)
	}
	if snap == nil {
		snap = &core.Snapshot{
			SchemaVersion: schemaVersion,
			Initialized:   true,
			Preferences:   core.DefaultPreferences(),
		}
	}
	s.Save(ctx, snap)
	return snap
}
