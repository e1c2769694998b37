// Package mailer renders markdown email templates and hands them to a Sender.
//
// Templates are markdown files with optional YAML front matter. The "Subject"
// key is itself a text/template executed with the same data as the body:
//
//	---
//	Subject: Welcome {{.Email}}
//	---
//	Hello **{{.Email}}**, your storage is ready.
//
// Rendered markdown is converted with goldmark, sanitized with bluemonday and
// placed into an html/template layout as {{.Content}}.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	texttemplate "text/template"
)

// Mailer renders and sends templated emails.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes a templated email.
type SendParams struct {
	To       string
	Template string // file name, e.g. "welcome.md"
	Data     any
	Subject  string // overrides the template subject
	Layout   string // overrides Config.DefaultLayout
}

// Send renders params.Template and delivers it.
// Subject precedence: params.Subject, then template front matter, then Config.FallbackSubject.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	rendered, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		if s, ok := rendered.Metadata.Subject(); ok {
			subject = s
		} else {
			subject = m.config.FallbackSubject
		}
	}
	subject, err = executeSubject(subject, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	if err := m.sender.Send(ctx, &Email{
		To:      []string{params.To},
		Subject: subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	}); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Option("missingkey=error").Parse(subject)
	if err != nil {
		return "", fmt.Errorf("parse subject: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute subject: %w", err)
	}
	return buf.String(), nil
}
