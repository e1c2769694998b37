package job

import (
	"context"
	"errors"
)

// ErrHealthcheckFailed is returned by the Healthcheck probe.
var ErrHealthcheckFailed = errors.New("job: healthcheck failed")

// Healthcheck reports unhealthy until the manager is started, and when its
// database is unreachable afterwards.
func Healthcheck(m *Manager) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if m == nil {
			return errors.Join(ErrHealthcheckFailed, errors.New("manager is nil"))
		}

		m.mu.Lock()
		started := m.started
		m.mu.Unlock()

		if !started {
			return errors.Join(ErrHealthcheckFailed, ErrNotStarted)
		}
		if err := m.pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
