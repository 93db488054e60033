package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/themepad/internal/event"
	"github.com/jmylchreest/themepad/internal/model"
)

const (
	// DBusInterface is the themepad interface name.
	DBusInterface = "io.github.themepad.Theme"
	// DBusPath is the themepad object path.
	DBusPath = "/io/github/themepad/Theme"
	// SignalThemeChanged is the member name of the broadcast signal.
	SignalThemeChanged = "ThemeChanged"
)

// ErrNotConnected is returned when emitting without a session bus connection.
var ErrNotConnected = errors.New("not connected to D-Bus")

// Emitter rebroadcasts themeChanged events as D-Bus signals.
type Emitter struct {
	mu      sync.RWMutex
	conn    *dbus.Conn
	logger  *slog.Logger
	current *model.Theme
}

// NewEmitter creates a new Emitter.
func NewEmitter(logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{logger: logger}
}

// Start connects to the session bus and exports the themepad object.
func (e *Emitter) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(e, DBusPath, DBusInterface); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name: DBusInterface,
				Methods: []introspect.Method{
					{
						Name: "GetCurrent",
						Args: []introspect.Arg{
							{Name: "id", Type: "s", Direction: "out"},
							{Name: "name", Type: "s", Direction: "out"},
						},
					},
				},
				Signals: themeSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	e.mu.Lock()
	e.conn = conn
	e.mu.Unlock()

	e.logger.Debug("D-Bus theme emitter started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop closes the bus connection.
func (e *Emitter) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.conn == nil {
		return nil
	}
	err := e.conn.Close()
	e.conn = nil
	return err
}

// GetCurrent is exported on D-Bus and returns the last broadcast theme.
func (e *Emitter) GetCurrent() (string, string, *dbus.Error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.current == nil {
		return "", "", nil
	}
	return e.current.ID, e.current.Name, nil
}

// EmitThemeChanged emits the ThemeChanged signal for t.
func (e *Emitter) EmitThemeChanged(t *model.Theme) error {
	e.mu.Lock()
	e.current = t
	conn := e.conn
	e.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	err := conn.Emit(DBusPath, DBusInterface+"."+SignalThemeChanged, signalBody(t)...)
	if err != nil {
		return fmt.Errorf("failed to emit %s signal: %w", SignalThemeChanged, err)
	}

	e.logger.Debug("emitted ThemeChanged signal", "theme", t.ID)
	return nil
}

// Forward emits a signal for every event until ctx is done or events is closed.
func (e *Emitter) Forward(ctx context.Context, events <-chan event.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Name != event.ThemeChanged || ev.Theme == nil {
				continue
			}
			if err := e.EmitThemeChanged(ev.Theme); err != nil {
				e.logger.Warn("failed to broadcast theme change", "error", err)
			}
		}
	}
}

func signalBody(t *model.Theme) []interface{} {
	return []interface{}{t.ID, t.Name, t.Category}
}

func themeSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: SignalThemeChanged,
			Args: []introspect.Arg{
				{Name: "id", Type: "s"},
				{Name: "name", Type: "s"},
				{Name: "category", Type: "s"},
			},
		},
	}
}
