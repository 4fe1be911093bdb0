// Package guest is the local data store used when nobody is signed in. It
// keeps every collection in memory, enforces the integrity rules of the real
// backend and writes the whole snapshot through to session storage after
// each mutation.
package guest

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/seed"
	"fintrack/internal/storage"
)

// DefaultSchemaVersion is bumped whenever the seed data changes shape.
const DefaultSchemaVersion = 1

// ChangePublisher receives an event after every persisted mutation.
type ChangePublisher interface {
	Publish(ctx context.Context, ev core.ChangeEvent) error
}

// Repository owns the live snapshot. It is safe for concurrent use; all
// operations are serialized.
type Repository struct {
	mu   sync.Mutex
	snap *core.Snapshot
	rev  uint64

	store         *storage.SnapshotStore
	seed          *seed.Generator
	publisher     ChangePublisher
	logger        *log.Logger
	now           func() time.Time
	owner         string
	schemaVersion int
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

func WithPublisher(p ChangePublisher) Option {
	return func(r *Repository) { r.publisher = p }
}

func WithSchemaVersion(v int) Option {
	return func(r *Repository) { r.schemaVersion = v }
}

func WithOwner(id string) Option {
	return func(r *Repository) { r.owner = id }
}

// WithSeed sets the generator used by the reset operations.
func WithSeed(g *seed.Generator) Option {
	return func(r *Repository) { r.seed = g }
}

// New loads the snapshot from store, seeding it when missing or stale.
func New(ctx context.Context, store *storage.SnapshotStore, opts ...Option) *Repository {
	r := &Repository{
		store:         store,
		now:           time.Now,
		owner:         seed.DefaultOwner,
		schemaVersion: DefaultSchemaVersion,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Discard()
	}
	r.logger = r.logger.WithComponent(log.ComponentGuest)
	if r.seed == nil {
		r.seed = &seed.Generator{
			Now:   r.now,
			Rand:  rand.New(rand.NewPCG(uint64(r.now().UnixNano()), 0)),
			Owner: r.owner,
		}
	}

	r.snap = store.Initialize(ctx, r.schemaVersion)
	r.logger.InfoContext(ctx, "Guest store ready",
		log.FieldSchema, r.snap.SchemaVersion,
		"categories", len(r.snap.Categories),
		"expenses", len(r.snap.Expenses))
	return r
}

// IsGuestUser reports whether id belongs to a guest session, so callers can
// choose between this store and the remote API.
func IsGuestUser(id string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(id)), "guest")
}

// Revision increases with every mutation.
func (r *Repository) Revision() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rev
}

// Snapshot returns a deep copy of the current state.
func (r *Repository) Snapshot() *core.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap.Clone()
}

// mutate runs fn under the lock. When fn reports a change the snapshot is
// written through and the event published once the lock is released.
func (r *Repository) mutate(ctx context.Context, fn func(s *core.Snapshot) (core.ChangeEvent, bool)) {
	r.mu.Lock()
	ev, changed := fn(r.snap)
	if changed {
		r.rev++
		ev.Revision = r.rev
		ev.Timestamp = r.now()
		r.store.Save(ctx, r.snap)
	}
	r.mu.Unlock()

	if !changed {
		return
	}
	r.logger.DebugContext(ctx, "Guest store changed",
		log.NewFields().WithEntity(ev.Entity, ev.ID).WithOperation(ev.Op).ToSlice()...)
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, ev); err != nil {
		r.logger.WarnContext(ctx, "Failed to publish change event",
			log.FieldEntity, ev.Entity, log.FieldID, ev.ID, log.FieldError, err)
	}
}

// read runs fn under the lock.
func (r *Repository) read(fn func(s *core.Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.snap)
}

func (r *Repository) invalid(ctx context.Context, entity string, err error) error {
	r.logger.DebugContext(ctx, "Rejected invalid input",
		log.FieldEntity, entity, log.FieldError, err, "error_type", log.ErrorTypeValidation)
	return err
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

func categoryName(categories []core.Category, id string) (string, bool) {
	i := indexOf(categories, func(c core.Category) bool { return c.ID == id })
	if i < 0 {
		return "", false
	}
	return categories[i].Name, true
}

// resolveCategory looks up the display name for a category reference. An
// empty id leaves the row uncategorised and resolves to ok=false.
func resolveCategory(categories []core.Category, id string) (name string, ok bool, err error) {
	if id == "" {
		return "", false, nil
	}
	name, ok = categoryName(categories, id)
	if !ok {
		return "", false, core.ErrCategoryNotFound
	}
	return name, true, nil
}
