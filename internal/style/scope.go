// Package style holds the root style scope that applied themes write into.
package style

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmylchreest/themepad/internal/model"
)

// Sink receives custom style properties.
type Sink interface {
	SetProperty(name, value string)
}

// Flusher is implemented by sinks that need a hook once a whole theme is applied.
type Flusher interface {
	Flush() error
}

// Scope is the document-wide set of custom properties.
// Properties keep the position of their first assignment; later assignments replace the value.
type Scope struct {
	mu    sync.RWMutex
	props model.Variables
	index map[string]int
}

// NewScope creates an empty Scope.
func NewScope() *Scope {
	return &Scope{index: make(map[string]int)}
}

// SetProperty sets name to value.
func (s *Scope) SetProperty(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[name]; ok {
		s.props[i].Value = value
		return
	}
	s.index[name] = len(s.props)
	s.props = append(s.props, model.Variable{Name: name, Value: value})
}

// GetPropertyValue returns the value of name, or "" if unset.
func (s *Scope) GetPropertyValue(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.index[name]; ok {
		return s.props[i].Value
	}
	return ""
}

// Properties returns a copy of all properties in order.
func (s *Scope) Properties() model.Variables {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(model.Variables, len(s.props))
	copy(out, s.props)
	return out
}

// Len returns the number of properties set.
func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.props)
}

// Stylesheet renders the scope as a :root rule.
func (s *Scope) Stylesheet() string {
	props := s.Properties()

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, p := range props {
		fmt.Fprintf(&b, "  %s: %s;\n", p.Name, p.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// FileSink writes into a Scope and mirrors it to a CSS file on Flush.
type FileSink struct {
	*Scope
	path string
}

// NewFileSink creates a FileSink writing scope to path.
func NewFileSink(scope *Scope, path string) *FileSink {
	return &FileSink{Scope: scope, path: path}
}

// Flush writes the stylesheet atomically.
func (f *FileSink) Flush() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(f.Stylesheet()), 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, f.path)
}
