package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmylchreest/themepad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cobaltJSON = `{
  "id": "cobalt-0",
  "name": "Cobalt",
  "category": "dark",
  "css_variables": {"--z-last": "1", "--a-first": "2", "--size": 12}
}`

const indexJSON = `{"themes": [
  {"id": "cobalt-0", "name": "Cobalt", "category": "dark"},
  {"id": "paper-1", "name": "Paper", "category": "light"}
]}`

// themeServer serves fixed documents and records requested paths.
type themeServer struct {
	*httptest.Server
	mu    sync.Mutex
	paths []string
	docs  map[string]string
}

func newThemeServer(t *testing.T, docs map[string]string) *themeServer {
	t.Helper()
	ts := &themeServer{docs: docs}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.paths = append(ts.paths, r.URL.Path)
		ts.mu.Unlock()

		body, ok := ts.docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *themeServer) requested() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.paths...)
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	c := NewClient("https://cdn.example.com/themes")
	assert.Equal(t, "https://cdn.example.com/themes/", c.BaseURL())
	assert.Equal(t, "https://cdn.example.com/themes/cobalt-0.json", c.ThemeURL("cobalt-0"))
	assert.Equal(t, "https://cdn.example.com/themes/index.json", c.IndexURL())
}

func TestClient_ThemeURLEscapesSlashes(t *testing.T) {
	c := NewClient("https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/..%2Fsecret.json", c.ThemeURL("../secret"))
}

func TestFetchTheme_RequestsExactURL(t *testing.T) {
	ts := newThemeServer(t, map[string]string{"/base/cobalt-0.json": cobaltJSON})
	c := NewClient(ts.URL + "/base/")

	theme, err := c.FetchTheme(context.Background(), "cobalt-0")
	require.NoError(t, err)

	assert.Equal(t, []string{"/base/cobalt-0.json"}, ts.requested())
	assert.Equal(t, "cobalt-0", theme.ID)
	assert.Equal(t, "Cobalt", theme.Name)
	assert.Equal(t, "dark", theme.Category)
	assert.Equal(t, model.Variables{
		{Name: "--z-last", Value: "1"},
		{Name: "--a-first", Value: "2"},
		{Name: "--size", Value: "12"},
	}, theme.Variables)
}

func TestFetchTheme_NotFound(t *testing.T) {
	ts := newThemeServer(t, nil)
	c := NewClient(ts.URL)

	_, err := c.FetchTheme(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, err, model.ErrNetwork)
	assert.Contains(t, err.Error(), "missing")
}

func TestFetchTheme_MalformedJSON(t *testing.T) {
	ts := newThemeServer(t, map[string]string{"/bad.json": `{"id": "bad",`})
	c := NewClient(ts.URL)

	_, err := c.FetchTheme(context.Background(), "bad")
	assert.ErrorIs(t, err, model.ErrParse)
}

func TestFetchTheme_RejectsOversizeDocument(t *testing.T) {
	// Valid JSON followed by padding, so a truncated read would still parse
	oversize := cobaltJSON + strings.Repeat(" ", maxDocumentBytes)
	ts := newThemeServer(t, map[string]string{"/cobalt-0.json": oversize})
	c := NewClient(ts.URL)

	_, err := c.FetchTheme(context.Background(), "cobalt-0")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNetwork)
	assert.NotErrorIs(t, err, model.ErrParse)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetchTheme_AcceptsDocumentAtLimit(t *testing.T) {
	atLimit := cobaltJSON + strings.Repeat(" ", maxDocumentBytes-len(cobaltJSON))
	ts := newThemeServer(t, map[string]string{"/cobalt-0.json": atLimit})
	c := NewClient(ts.URL)

	theme, err := c.FetchTheme(context.Background(), "cobalt-0")
	require.NoError(t, err)
	assert.Equal(t, "cobalt-0", theme.ID)
}

func TestFetchTheme_TransportError(t *testing.T) {
	ts := newThemeServer(t, nil)
	url := ts.URL
	ts.Close()

	c := NewClient(url, WithTimeout(time.Second))
	_, err := c.FetchTheme(context.Background(), "cobalt-0")
	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestFetchTheme_ContextCanceled(t *testing.T) {
	ts := newThemeServer(t, map[string]string{"/cobalt-0.json": cobaltJSON})
	c := NewClient(ts.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchTheme(ctx, "cobalt-0")
	assert.ErrorIs(t, err, model.ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchIndex(t *testing.T) {
	ts := newThemeServer(t, map[string]string{"/index.json": indexJSON})
	c := NewClient(ts.URL)

	themes, err := c.FetchIndex(context.Background())
	require.NoError(t, err)
	require.Len(t, themes, 2)
	assert.Equal(t, model.ThemeSummary{ID: "cobalt-0", Name: "Cobalt", Category: "dark"}, themes[0])
	assert.Equal(t, "paper-1", themes[1].ID)
}

func TestFetchIndex_ServerError(t *testing.T) {
	ts := newThemeServer(t, nil)
	c := NewClient(ts.URL)

	themes, err := c.FetchIndex(context.Background())
	assert.Nil(t, themes)
	assert.ErrorIs(t, err, model.ErrNetwork)
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantNilVars bool
		wantVars    int
	}{
		{"valid", cobaltJSON, nil, false, 3},
		{"missing css_variables", `{"id":"x","name":"X"}`, nil, true, 0},
		{"css_variables not an object", `{"id":"x","css_variables":"red"}`, nil, true, 0},
		{"empty css_variables", `{"id":"x","css_variables":{}}`, nil, false, 0},
		{"not json", `<html>`, model.ErrParse, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := ParseTheme([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNilVars {
				assert.Nil(t, theme.Variables)
				assert.ErrorIs(t, theme.Validate(), model.ErrInvalidFormat)
				return
			}
			assert.NotNil(t, theme.Variables)
			assert.Len(t, theme.Variables, tt.wantVars)
		})
	}
}

func TestParseIndex_MissingThemes(t *testing.T) {
	_, err := ParseIndex([]byte(`{"items": []}`))
	assert.ErrorIs(t, err, model.ErrInvalidFormat)

	_, err = ParseIndex([]byte(`nope`))
	assert.ErrorIs(t, err, model.ErrParse)

	themes, err := ParseIndex([]byte(`{"themes": []}`))
	require.NoError(t, err)
	assert.Empty(t, themes)
}
