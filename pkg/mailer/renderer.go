package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns markdown templates with YAML front matter into HTML wrapped in a layout.
// Parsed templates and layouts are cached; rendered output is not.
type Renderer struct {
	fs        fs.FS
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
	tplDir    string
	layoutDir string
	mu        sync.RWMutex
}

type parsedTemplate struct {
	meta *Template
	body *texttemplate.Template
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTemplateDir sets the directory templates are read from. Default ".".
func WithTemplateDir(dir string) RendererOption {
	return func(r *Renderer) { r.tplDir = dir }
}

// WithLayoutDir sets the directory layouts are read from. Default "layouts".
func WithLayoutDir(dir string) RendererOption {
	return func(r *Renderer) { r.layoutDir = dir }
}

// NewRenderer creates a renderer reading from fsys.
func NewRenderer(fsys fs.FS, opts ...RendererOption) *Renderer {
	r := &Renderer{
		fs:        fsys,
		md:        goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		policy:    bluemonday.UGCPolicy(),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
		tplDir:    ".",
		layoutDir: "layouts",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rendered is the output of Render.
type Rendered struct {
	Metadata *Template
	HTML     string
	Text     string // executed markdown, before HTML conversion
}

// Render executes the named template with data, converts it to sanitized HTML
// and wraps it in the named layout.
func (r *Renderer) Render(layout, name string, data any) (*Rendered, error) {
	tpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := tpl.body.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, name, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("%w: convert %s: %v", ErrRenderFailed, name, err)
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := lt.Execute(&out, map[string]any{
		"Content":  template.HTML(r.policy.SanitizeBytes(body.Bytes())), //nolint:gosec // sanitized above
		"Metadata": tpl.meta.Metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &Rendered{
		Metadata: tpl.meta,
		HTML:     out.String(),
		Text:     markdown.String(),
	}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	tpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.templates[name]; ok {
		return tpl, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.tplDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	meta, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}
	body, err := texttemplate.New(name).Parse(meta.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	tpl = &parsedTemplate{meta: meta, body: body}
	r.templates[name] = tpl
	return tpl, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if lt, ok := r.layouts[name]; ok {
		return lt, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	lt, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = lt
	return lt, nil
}
