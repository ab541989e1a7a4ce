// Package upload manages concurrent per-file upload tasks: client-side
// validation, byte-level progress and terminal states. All accepted
// files are dispatched immediately and in parallel; there is no queue,
// no cap, no retry and no cancellation; removing a task only hides it.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blackfile/blackfile-cli/internal/validation"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// Status is the task state.
type Status string

// Task states
const (
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Task is one upload in flight or finished. Err carries the
// user-facing message for StatusError.
type Task struct {
	ID       string
	Name     string
	Size     int64
	Progress float64
	Status   Status
	Err      string
}

// Uploader is the surface of the HTTP client the manager needs.
type Uploader interface {
	UploadFile(ctx context.Context, fileName string, r io.Reader, size int64, onProgress func(float64)) (*pkgapi.UploadResponse, error)
}

// Manager tracks upload tasks.
type Manager struct {
	uploader    Uploader
	policy      validation.UploadPolicy
	removeDelay time.Duration

	mu    sync.Mutex
	tasks map[string]*Task
	order []string

	wg sync.WaitGroup
}

// completedTaskTTL is how long a completed task stays visible before it
// is removed automatically. Errored tasks stay until removed by hand.
const completedTaskTTL = time.Second

// NewManager creates an upload manager using the given policy.
func NewManager(uploader Uploader, policy validation.UploadPolicy) *Manager {
	return &Manager{
		uploader:    uploader,
		policy:      policy,
		removeDelay: completedTaskTTL,
		tasks:       make(map[string]*Task),
	}
}

// Add validates the file at path and, if it passes, starts uploading it
// immediately in its own goroutine. Validation failures produce a task
// in StatusError without any network traffic. The returned id
// identifies the task; the error is non-nil only when the file cannot
// be opened at all.
func (m *Manager) Add(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	name := filepath.Base(path)
	task := &Task{
		ID:   uuid.NewString(),
		Name: name,
		Size: info.Size(),
	}

	if err := m.policy.ValidateFile(name, info.Size()); err != nil {
		f.Close()
		task.Status = StatusError
		task.Err = err.Error()
		m.addTask(task)
		return task.ID, nil
	}

	task.Status = StatusUploading
	m.addTask(task)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer f.Close()
		m.run(ctx, task.ID, name, f, info.Size())
	}()

	return task.ID, nil
}

// run performs one upload and drives the task through its terminal
// state.
func (m *Manager) run(ctx context.Context, taskID, name string, r io.Reader, size int64) {
	onProgress := func(pct float64) {
		m.mu.Lock()
		if t, ok := m.tasks[taskID]; ok && t.Status == StatusUploading {
			t.Progress = pct
		}
		m.mu.Unlock()
	}

	_, err := m.uploader.UploadFile(ctx, name, r, size, onProgress)

	m.mu.Lock()
	t, ok := m.tasks[taskID]
	if ok {
		if err != nil {
			t.Status = StatusError
			t.Err = err.Error()
		} else {
			t.Status = StatusCompleted
			t.Progress = 100
		}
	}
	m.mu.Unlock()

	if ok && err == nil {
		time.AfterFunc(m.removeDelay, func() {
			m.Remove(taskID)
		})
	}
}

// Tasks returns a snapshot of the visible tasks in creation order.
func (m *Manager) Tasks() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Task, 0, len(m.order))
	for _, id := range m.order {
		if t, ok := m.tasks[id]; ok {
			out = append(out, *t)
		}
	}
	return out
}

// Remove hides a task. An in-flight upload keeps running; only its
// task disappears from the visible set.
func (m *Manager) Remove(taskID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[taskID]; !ok {
		return
	}
	delete(m.tasks, taskID)
	for i, id := range m.order {
		if id == taskID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Active reports whether any task is still uploading.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.Status == StatusUploading {
			return true
		}
	}
	return false
}

// Wait blocks until every dispatched upload finished (successfully or
// not). It does not wait for the auto-removal timers.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func (m *Manager) addTask(t *Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[t.ID] = t
	m.order = append(m.order, t.ID)
}
