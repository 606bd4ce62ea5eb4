package slugger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sagetools/sagekit/core/logger"
	"github.com/sagetools/sagekit/pkg/slug"
)

// Resolver produces collection-unique slugs. It holds no per-call state and is
// safe for concurrent use as long as the Store is.
type Resolver struct {
	store  Store
	cfg    Config
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// New creates a Resolver backed by store.
func New(store Store, opts ...Option) (*Resolver, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	r := &Resolver{
		store:  store,
		cfg:    DefaultConfig(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if r.cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, r.cfg.MaxAttempts)
	}
	if r.cfg.MaxLength < 0 {
		return nil, fmt.Errorf("%w: max length must not be negative, got %d", ErrInvalidConfig, r.cfg.MaxLength)
	}

	return r, nil
}

// WithConfig replaces every setting at once, typically with a value from config.Load.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) error {
		r.cfg = cfg
		return nil
	}
}

// WithLogger sets the logger used for collision and retry events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		r.logger = l.With(logger.Component("slugger"))
		return nil
	}
}

// WithAutoSlugify toggles deriving the slug from the title.
func WithAutoSlugify(enabled bool) Option {
	return func(r *Resolver) error {
		r.cfg.AutoSlugify = enabled
		return nil
	}
}

// WithAllowUnicode toggles keeping non-ASCII letters.
func WithAllowUnicode(allow bool) Option {
	return func(r *Resolver) error {
		r.cfg.AllowUnicode = allow
		return nil
	}
}

// WithMaxLength limits slugs, numeric suffix included. Zero disables the limit.
func WithMaxLength(n int) Option {
	return func(r *Resolver) error {
		r.cfg.MaxLength = n
		return nil
	}
}

// WithMaxAttempts caps the number of candidates tried before ErrTooManyAttempts.
func WithMaxAttempts(n int) Option {
	return func(r *Resolver) error {
		r.cfg.MaxAttempts = n
		return nil
	}
}

// Config returns the effective settings.
func (r *Resolver) Config() Config {
	return r.cfg
}

// DeriveBase normalizes title into the base slug. It performs no I/O.
func (r *Resolver) DeriveBase(title string) string {
	return slug.Make(title,
		slug.AllowUnicode(r.cfg.AllowUnicode),
		slug.MaxLength(r.cfg.MaxLength),
	)
}

// IsUnique reports whether no entity other than excludeID holds candidate.
func (r *Resolver) IsUnique(ctx context.Context, candidate, excludeID string) (bool, error) {
	exists, err := r.store.Exists(ctx, candidate, excludeID)
	if err != nil {
		return false, storeError(err)
	}
	return !exists, nil
}

// Resolve returns the first free slug among base, base-1, base-2, ...
func (r *Resolver) Resolve(ctx context.Context, title, excludeID string) (string, error) {
	base := r.DeriveBase(title)
	if base == "" {
		return "", ErrEmptySlug
	}
	s, _, err := r.firstFree(ctx, base, excludeID, 0)
	return s, err
}

// ResolveEntity resolves the slug for e, honoring the auto-slugify setting.
func (r *Resolver) ResolveEntity(ctx context.Context, e Entity) (string, error) {
	base, err := r.baseFor(e)
	if err != nil {
		return "", err
	}
	s, _, err := r.firstFree(ctx, base, e.ID, 0)
	return s, err
}

// HasChanged reports whether newSlug differs from the slug stored for id.
// Unsaved (empty id) and unknown entities are reported as unchanged.
func (r *Resolver) HasChanged(ctx context.Context, id, newSlug string) (bool, error) {
	if id == "" {
		return false, nil
	}
	stored, err := r.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError(err)
	}
	return stored.Slug != newSlug, nil
}

// Save resolves a unique slug for e and persists it. A storage-level conflict
// is treated as authoritative and the next suffix is tried. Entities without
// an ID are assigned one.
func (r *Resolver) Save(ctx context.Context, e Entity) (Entity, error) {
	if e.ID == "" {
		e.ID = NewID()
	}

	base, err := r.baseFor(e)
	if err != nil {
		return Entity{}, err
	}

	next := 0
	for {
		candidate, n, err := r.firstFree(ctx, base, e.ID, next)
		if err != nil {
			return Entity{}, err
		}

		e.Slug = candidate
		err = r.store.Put(ctx, e)
		if err == nil {
			return e, nil
		}
		if !errors.Is(err, ErrConflict) {
			return Entity{}, storeError(err)
		}

		r.logger.DebugContext(ctx, "slug claimed concurrently, retrying",
			logger.Slug(candidate),
			logger.Attempt(n+1),
		)
		next = n + 1
	}
}

func (r *Resolver) baseFor(e Entity) (string, error) {
	src := e.Title
	if !r.cfg.AutoSlugify {
		src = e.Slug
	}
	base := r.DeriveBase(src)
	if base == "" {
		return "", ErrEmptySlug
	}
	return base, nil
}

// firstFree walks suffixes starting at start and returns the first free candidate
// together with its suffix number.
func (r *Resolver) firstFree(ctx context.Context, base, excludeID string, start int) (string, int, error) {
	for n := start; n < r.cfg.MaxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return "", n, err
		}

		candidate := r.candidate(base, n)
		if candidate == "" {
			break
		}
		unique, err := r.IsUnique(ctx, candidate, excludeID)
		if err != nil {
			return "", n, err
		}
		if unique {
			return candidate, n, nil
		}
	}

	r.logger.WarnContext(ctx, "slug collision cap reached",
		logger.Slug(base),
		logger.Attempt(r.cfg.MaxAttempts),
	)
	return "", r.cfg.MaxAttempts, fmt.Errorf("%w: %q after %d candidates", ErrTooManyAttempts, base, r.cfg.MaxAttempts)
}

// candidate renders base with suffix n, shortening base so the result fits
// MaxLength. It returns "" once the suffix leaves no room for the base.
func (r *Resolver) candidate(base string, n int) string {
	if n == 0 {
		return base
	}
	suffix := "-" + strconv.Itoa(n)
	if limit := r.cfg.MaxLength; limit > 0 && utf8.RuneCountInString(base)+len(suffix) > limit {
		keep := limit - len(suffix)
		if keep < 1 {
			return ""
		}
		base = strings.TrimRight(string([]rune(base)[:keep]), "-_")
		if base == "" {
			return ""
		}
	}
	return base + suffix
}

func storeError(err error) error {
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
