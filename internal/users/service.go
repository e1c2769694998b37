package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/filevault/pkg/db"
	"github.com/dmitrymomot/filevault/pkg/id"
	"github.com/dmitrymomot/filevault/pkg/job"
)

// Enqueuer inserts jobs inside the caller's transaction. *job.Manager implements it.
type Enqueuer interface {
	EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, opts ...job.EnqueueOption) error
}

// Service implements registration, lookup and credential checks.
type Service struct {
	db         db.DBTX
	repo       *Repository
	jobs       Enqueuer
	bcryptCost int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func NewService(conn db.DBTX, jobs Enqueuer, opts ...ServiceOption) *Service {
	s := &Service{
		db:         conn,
		repo:       NewRepository(conn),
		jobs:       jobs,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and schedules the welcome task in the same transaction,
// so a user never exists without its welcome job.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("users: hash password: %w", err)
	}

	u := &User{
		ID:           id.NewObjectID(),
		Email:        email,
		PasswordHash: string(hash),
	}

	err = db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
			return err
		}
		if err := s.jobs.EnqueueTx(ctx, tx, WelcomeTaskName, WelcomePayload{UserID: u.ID}); err != nil {
			return fmt.Errorf("users: enqueue welcome: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Authenticate checks credentials. It implements auth.Authenticator.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, bool, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", false, nil
	}
	return u.ID, true, nil
}

// Count returns the number of registered users.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
