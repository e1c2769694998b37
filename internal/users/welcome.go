package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/filevault/pkg/job"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/mailer"
)

const (
	WelcomeTaskName = "users:welcome"
	WelcomeQueue    = "users"
	welcomeTemplate = "welcome.md"
)

// WelcomePayload is the job payload for WelcomeTask.
type WelcomePayload struct {
	UserID string `json:"userId"`
}

// Notifier delivers templated emails. *mailer.Mailer implements it.
type Notifier interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// WelcomeTask greets newly registered users.
type WelcomeTask struct {
	repo   *Repository
	mail   Notifier
	logger *slog.Logger
}

// NewWelcomeTask creates the task. A nil Notifier only logs the greeting.
func NewWelcomeTask(repo *Repository, mail Notifier, log *slog.Logger) *WelcomeTask {
	if log == nil {
		log = logger.NewNope()
	}
	return &WelcomeTask{repo: repo, mail: mail, logger: log}
}

func (t *WelcomeTask) Name() string  { return WelcomeTaskName }
func (t *WelcomeTask) Queue() string { return WelcomeQueue }

func (t *WelcomeTask) Handle(ctx context.Context, p WelcomePayload) error {
	if p.UserID == "" {
		return job.Permanent(ErrMissingUserID)
	}

	u, err := t.repo.FindByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, p.UserID)
		}
		return err
	}

	t.logger.InfoContext(ctx, fmt.Sprintf("Welcome %s!", u.Email), slog.String("user_id", u.ID))

	if t.mail == nil {
		return nil
	}
	return t.mail.Send(ctx, mailer.SendParams{
		To:       u.Email,
		Template: welcomeTemplate,
		Data:     map[string]string{"Email": u.Email},
	})
}
