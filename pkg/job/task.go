package job

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sync"
)

// taskExecutor runs a task against its raw JSON payload.
type taskExecutor interface {
	Execute(ctx context.Context, payload json.RawMessage) error
}

type registeredTask struct {
	executor taskExecutor
	queue    string // queue used when Enqueue gets no InQueue option
}

type taskRegistry struct {
	tasks map[string]registeredTask
	mu    sync.RWMutex
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{tasks: make(map[string]registeredTask)}
}

func (r *taskRegistry) register(name string, t registeredTask) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[name] = t
}

func (r *taskRegistry) get(name string) (registeredTask, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[name]
	return t, ok
}

func (r *taskRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.tasks))
}

// Task is a named handler for payloads of type P.
type Task[P any] interface {
	Name() string
	Handle(context.Context, P) error
}

// queued is implemented by tasks that run on a dedicated queue.
type queued interface {
	Queue() string
}

type taskWrapper[P any] struct {
	task Task[P]
}

// Execute decodes the payload and calls the typed handler. A payload that
// does not decode is a permanent failure.
func (w *taskWrapper[P]) Execute(ctx context.Context, raw json.RawMessage) error {
	var payload P
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return Permanent(errors.Join(ErrInvalidPayload, err))
		}
	}
	return w.task.Handle(ctx, payload)
}

type scheduledExecutor func(context.Context) error

func (f scheduledExecutor) Execute(ctx context.Context, _ json.RawMessage) error {
	return f(ctx)
}
