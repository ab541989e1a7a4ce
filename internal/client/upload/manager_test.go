package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackfile/blackfile-cli/internal/validation"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// fakeUploader is a hand-written mock of the upload surface.
type fakeUploader struct {
	mu    sync.Mutex
	err   error
	calls int
	names []string
}

func (f *fakeUploader) UploadFile(ctx context.Context, fileName string, r io.Reader, size int64, onProgress func(float64)) (*pkgapi.UploadResponse, error) {
	f.mu.Lock()
	f.calls++
	f.names = append(f.names, fileName)
	f.mu.Unlock()

	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &pkgapi.UploadResponse{ID: "file-1", Name: fileName, Size: size}, nil
}

func (f *fakeUploader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// writeTempFile creates a file with the given name and size in a
// per-test temp dir.
func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0600))
	return path
}

func newTestManager(uploader Uploader) *Manager {
	return NewManager(uploader, validation.DefaultUploadPolicy())
}

func findTask(t *testing.T, m *Manager, id string) Task {
	t.Helper()
	for _, task := range m.Tasks() {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not visible", id)
	return Task{}
}

func TestManager_Add_Success(t *testing.T) {
	uploader := &fakeUploader{}
	m := newTestManager(uploader)
	path := writeTempFile(t, "photo.jpg", 1024)

	id, err := m.Add(context.Background(), path)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	m.Wait()

	task := findTask(t, m, id)
	assert.Equal(t, StatusCompleted, task.Status)
	assert.EqualValues(t, 100, task.Progress)
	assert.Equal(t, "photo.jpg", task.Name)
	assert.Equal(t, 1, uploader.callCount())
}

func TestManager_Add_MissingFile(t *testing.T) {
	m := newTestManager(&fakeUploader{})

	_, err := m.Add(context.Background(), filepath.Join(t.TempDir(), "absent.jpg"))
	assert.Error(t, err)
	assert.Empty(t, m.Tasks())
}

// A validation failure produces an errored task without any network
// traffic.
func TestManager_Add_RejectedType(t *testing.T) {
	uploader := &fakeUploader{}
	m := newTestManager(uploader)
	path := writeTempFile(t, "setup.exe", 100)

	id, err := m.Add(context.Background(), path)
	require.NoError(t, err)

	task := findTask(t, m, id)
	assert.Equal(t, StatusError, task.Status)
	assert.Equal(t, "file type not supported", task.Err)
	assert.Zero(t, uploader.callCount())
}

func TestManager_Add_RejectedSize(t *testing.T) {
	uploader := &fakeUploader{}
	m := NewManager(uploader, validation.UploadPolicy{
		MaxFileSizeMB: 1,
		AllowedTypes:  []string{"image/*"},
	})
	path := writeTempFile(t, "big.jpg", 2*1024*1024)

	id, err := m.Add(context.Background(), path)
	require.NoError(t, err)

	task := findTask(t, m, id)
	assert.Equal(t, StatusError, task.Status)
	assert.Equal(t, "file size exceeds 1MB limit", task.Err)
	assert.Zero(t, uploader.callCount())
}

func TestManager_Add_UploadError(t *testing.T) {
	uploader := &fakeUploader{err: fmt.Errorf("server error (500): storage full")}
	m := newTestManager(uploader)
	path := writeTempFile(t, "photo.jpg", 1024)

	id, err := m.Add(context.Background(), path)
	require.NoError(t, err)

	m.Wait()

	// Errored tasks stay visible until removed by hand.
	task := findTask(t, m, id)
	assert.Equal(t, StatusError, task.Status)
	assert.Contains(t, task.Err, "storage full")
}

// Completed tasks disappear on their own shortly after finishing.
func TestManager_AutoRemoveCompleted(t *testing.T) {
	m := newTestManager(&fakeUploader{})
	m.removeDelay = 10 * time.Millisecond
	path := writeTempFile(t, "photo.jpg", 1024)

	id, err := m.Add(context.Background(), path)
	require.NoError(t, err)

	m.Wait()
	require.Equal(t, StatusCompleted, findTask(t, m, id).Status)

	assert.Eventually(t, func() bool {
		return len(m.Tasks()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestManager_TasksOrdered(t *testing.T) {
	uploader := &fakeUploader{}
	m := newTestManager(uploader)

	var ids []string
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		id, err := m.Add(context.Background(), writeTempFile(t, name, 10))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	m.Wait()

	tasks := m.Tasks()
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		assert.Equal(t, ids[i], task.ID)
	}
}

func TestManager_Remove(t *testing.T) {
	m := newTestManager(&fakeUploader{})
	path := writeTempFile(t, "photo.jpg", 1024)

	id, err := m.Add(context.Background(), path)
	require.NoError(t, err)
	m.Wait()

	m.Remove(id)
	assert.Empty(t, m.Tasks())

	// Removing twice is harmless.
	m.Remove(id)
}

func TestManager_Active(t *testing.T) {
	m := newTestManager(&fakeUploader{})
	assert.False(t, m.Active())

	path := writeTempFile(t, "photo.jpg", 1024)
	_, err := m.Add(context.Background(), path)
	require.NoError(t, err)

	m.Wait()
	assert.False(t, m.Active())
}

func TestManager_ParallelUploads(t *testing.T) {
	uploader := &fakeUploader{}
	m := newTestManager(uploader)

	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("photo-%d.jpg", i)
		_, err := m.Add(context.Background(), writeTempFile(t, name, 100))
		require.NoError(t, err)
	}
	m.Wait()

	assert.Equal(t, 5, uploader.callCount())
	for _, task := range m.Tasks() {
		assert.Equal(t, StatusCompleted, task.Status)
	}
}
