package switcher

import (
	"bytes"
	"html/template"
	"sync"
)

var (
	errorTmpl  = template.Must(template.New("error").Parse(`<p>{{.}}</p>`))
	selectTmpl = template.Must(template.New("select").Parse(
		`<select class="theme-switcher" name="theme">` +
			`{{range .}}<option value="{{.Value}}">{{.Label}}</option>{{end}}` +
			`</select>`))
	containerTmpl = template.Must(template.New("container").Parse(
		`<div id="{{.ID}}">{{range .Content}}{{.}}{{end}}</div>`))
)

// HTMLContainer renders the switcher as an HTML fragment.
type HTMLContainer struct {
	mu      sync.RWMutex
	id      string
	content []template.HTML
}

// NewHTMLContainer creates an empty container element with the given id.
func NewHTMLContainer(id string) *HTMLContainer {
	return &HTMLContainer{id: id}
}

// ShowError replaces the content with a paragraph holding message.
func (c *HTMLContainer) ShowError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = []template.HTML{render(errorTmpl, message)}
}

// ShowOptions appends a select element.
func (c *HTMLContainer) ShowOptions(options []Option) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = append(c.content, render(selectTmpl, options))
}

// Inner returns the container's inner HTML.
func (c *HTMLContainer) Inner() template.HTML {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var buf bytes.Buffer
	for _, part := range c.content {
		buf.WriteString(string(part))
	}
	return template.HTML(buf.String())
}

// HTML returns the container element including its content.
func (c *HTMLContainer) HTML() template.HTML {
	c.mu.RLock()
	data := struct {
		ID      string
		Content []template.HTML
	}{ID: c.id, Content: append([]template.HTML(nil), c.content...)}
	c.mu.RUnlock()

	return render(containerTmpl, data)
}

func render(t *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}
