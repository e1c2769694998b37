package job

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTask    = errors.New("job: unknown task")
	ErrInvalidPayload = errors.New("job: invalid payload")
	ErrAlreadyStarted = errors.New("job: already started")
	ErrNotStarted     = errors.New("job: not started")
	ErrPoolRequired   = errors.New("job: pool is required")

	// ErrPermanent marks a failure that retrying cannot fix. The job is
	// cancelled instead of being scheduled for another attempt.
	ErrPermanent = errors.New("job: permanent failure")
)

// Permanent wraps err so the worker cancels the job rather than retrying it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}
