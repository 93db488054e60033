package theme

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/themepad/internal/event"
	"github.com/jmylchreest/themepad/internal/model"
	"github.com/jmylchreest/themepad/internal/store"
	"github.com/jmylchreest/themepad/internal/style"
)

// Fetcher retrieves theme documents.
type Fetcher interface {
	FetchTheme(ctx context.Context, id string) (*model.Theme, error)
	FetchIndex(ctx context.Context) ([]model.ThemeSummary, error)
}

// Loader fetches themes, applies them to a style sink and persists the selection.
type Loader struct {
	fetcher   Fetcher
	sink      style.Sink
	prefs     store.PreferenceStore
	bus       *event.Bus
	logger    *slog.Logger
	clock     clockwork.Clock
	dropStale bool

	// mu serializes applies and guards the fields below.
	mu          sync.Mutex
	entropy     *ulid.MonotonicEntropy
	lastApplied ulid.ULID
	current     *model.Theme
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock sets the clock used for preference timestamps and request tokens.
func WithClock(clock clockwork.Clock) Option {
	return func(l *Loader) {
		l.clock = clock
	}
}

// WithBus publishes themeChanged events on bus instead of a private one.
func WithBus(bus *event.Bus) Option {
	return func(l *Loader) {
		l.bus = bus
	}
}

// WithStaleDrop controls whether a response for an older request is discarded
// once a newer request has been applied. Enabled by default.
func WithStaleDrop(drop bool) Option {
	return func(l *Loader) {
		l.dropStale = drop
	}
}

// NewLoader creates a new theme loader.
func NewLoader(fetcher Fetcher, sink style.Sink, prefs store.PreferenceStore, opts ...Option) *Loader {
	l := &Loader{
		fetcher:   fetcher,
		sink:      sink,
		prefs:     prefs,
		logger:    slog.Default(),
		clock:     clockwork.NewRealClock(),
		dropStale: true,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.bus == nil {
		l.bus = event.NewBus()
	}

	return l
}

// Bus returns the bus themeChanged events are published on.
func (l *Loader) Bus() *event.Bus {
	return l.bus
}

// Current returns the last applied theme, or nil.
func (l *Loader) Current() *model.Theme {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Load fetches a theme by id, applies it and persists it as the preference.
// Errors are logged and returned.
func (l *Loader) Load(ctx context.Context, id string) (*model.Theme, error) {
	theme, err := l.fetchAndApply(ctx, id, true)
	if err != nil {
		if errors.Is(err, model.ErrStale) {
			l.logger.Debug("dropped stale theme response", "theme", id)
		} else {
			l.logger.Error("error loading theme", "theme", id, "error", err)
		}
		return nil, err
	}
	return theme, nil
}

// Preview fetches and applies a theme without persisting it.
// Failures are logged only.
func (l *Loader) Preview(ctx context.Context, id string) {
	if _, err := l.fetchAndApply(ctx, id, false); err != nil {
		if errors.Is(err, model.ErrStale) {
			l.logger.Debug("dropped stale theme preview", "theme", id)
			return
		}
		l.logger.Error("error previewing theme", "theme", id, "error", err)
	}
}

// ListAvailable fetches the theme index. Every call re-fetches.
func (l *Loader) ListAvailable(ctx context.Context) ([]model.ThemeSummary, error) {
	themes, err := l.fetcher.FetchIndex(ctx)
	if err != nil {
		l.logger.Error("error fetching themes", "error", err)
		return nil, err
	}
	return themes, nil
}

// RestoreSaved re-applies the persisted preference, if any.
// A missing or unreadable preference is a silent no-op.
func (l *Loader) RestoreSaved(ctx context.Context) {
	pref, err := l.prefs.Load()
	if err != nil {
		l.logger.Debug("ignoring unreadable theme preference", "error", err)
		return
	}
	if pref == nil || pref.ID == "" {
		return
	}

	l.logger.Debug("restoring saved theme", "theme", pref.ID)
	_, _ = l.Load(ctx, pref.ID)
}

// fetchAndApply runs the fetch-and-apply pipeline for one request.
func (l *Loader) fetchAndApply(ctx context.Context, id string, persist bool) (*model.Theme, error) {
	token := l.nextToken()

	theme, err := l.fetcher.FetchTheme(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := l.apply(theme, token, persist); err != nil {
		return nil, err
	}
	return theme, nil
}

// nextToken issues a sequencing token ordered by issue time.
func (l *Loader) nextToken() ulid.ULID {
	l.mu.Lock()
	defer l.mu.Unlock()

	token, err := ulid.New(ulid.Timestamp(l.clock.Now()), l.entropy)
	if err != nil {
		// Monotonic entropy overflowed within one millisecond; start a fresh sequence.
		l.entropy = ulid.Monotonic(rand.Reader, 0)
		token = ulid.MustNew(ulid.Timestamp(l.clock.Now()), l.entropy)
	}
	return token
}

// apply copies all variables to the sink, then persists and broadcasts.
func (l *Loader) apply(theme *model.Theme, token ulid.ULID, persist bool) error {
	if err := theme.Validate(); err != nil {
		l.logger.Error("invalid theme format", "theme", theme.ID, "error", err)
		return err
	}

	l.mu.Lock()
	if l.dropStale && token.Compare(l.lastApplied) < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", model.ErrStale, theme.ID)
	}

	for _, v := range theme.Variables {
		l.sink.SetProperty(v.Name, v.Value)
	}
	if f, ok := l.sink.(style.Flusher); ok {
		if err := f.Flush(); err != nil {
			l.logger.Warn("failed to flush style sink", "error", err)
		}
	}

	if persist {
		if err := l.prefs.Save(model.NewPreference(theme, l.clock.Now())); err != nil {
			l.logger.Debug("failed to persist theme preference", "theme", theme.ID, "error", err)
		}
	}

	l.lastApplied = token
	l.current = theme
	l.mu.Unlock()

	l.bus.Publish(event.Event{
		Name:      event.ThemeChanged,
		Theme:     theme,
		Persisted: persist,
	})

	l.logger.Info("theme applied", "theme", theme.ID, "name", theme.Name, "persisted", persist)
	return nil
}
