package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackfile/blackfile-cli/internal/client/storage"
	"github.com/blackfile/blackfile-cli/internal/models"
)

// memStorage is an in-memory SessionStorage for tests.
type memStorage struct {
	mu      sync.Mutex
	session *storage.Session
	user    *models.UserProfile
}

func (m *memStorage) SaveSession(ctx context.Context, session *storage.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	return nil
}

func (m *memStorage) GetSession(ctx context.Context) (*storage.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, storage.ErrSessionNotFound
	}
	copied := *m.session
	return &copied, nil
}

func (m *memStorage) DeleteSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	m.user = nil
	return nil
}

func (m *memStorage) SaveUser(ctx context.Context, user *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	return nil
}

func (m *memStorage) GetUser(ctx context.Context) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, storage.ErrUserNotFound
	}
	copied := *m.user
	return &copied, nil
}

// withSession seeds the store with a stored token pair.
func withSession(access, refresh string) *memStorage {
	return &memStorage{session: storage.NewSession(access, refresh)}
}

func TestNewClient(t *testing.T) {
	store := &memStorage{}
	client := NewClient("http://localhost:8000/api/v1", store, nil)

	require.NotNil(t, client)
	assert.Equal(t, "http://localhost:8000/api/v1", client.BaseURL())
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// A 401 on a protected call triggers exactly one refresh and one retry
// with the renewed token.
func TestDo_RefreshAndRetry(t *testing.T) {
	var resourceCalls, refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/users/stats", func(w http.ResponseWriter, r *http.Request) {
		resourceCalls++
		switch r.Header.Get("Authorization") {
		case "Bearer new-access":
			w.Write([]byte(`{"totalFiles": 3, "storageUsed": 100, "sharedFiles": 1, "totalDownloads": 2}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		w.Write([]byte(`{"token": "new-access", "refreshToken": "new-refresh"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := withSession("stale-access", "refresh-token")
	client := NewClient(server.URL, store, nil)

	stats, err := client.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 2, resourceCalls)
	assert.Equal(t, 1, refreshCalls)

	// The rotated pair replaced the stored one.
	session, err := store.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-access", session.AccessToken)
	assert.Equal(t, "new-refresh", session.RefreshToken)
}

// Without a refresh token a 401 clears the session and reports that a
// login is needed.
func TestDo_NoRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := withSession("stale-access", "")
	client := NewClient(server.URL, store, nil)

	_, err := client.GetStats(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = store.GetSession(context.Background())
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

// A failing refresh clears the session and reports expiry.
func TestDo_RefreshFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := withSession("stale-access", "stale-refresh")
	client := NewClient(server.URL, store, nil)

	_, err := client.GetStats(context.Background())
	assert.ErrorIs(t, err, ErrAuthExpired)

	_, err = store.GetSession(context.Background())
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

// There is exactly one retry: a second 401 after a successful refresh
// ends the attempt instead of looping.
func TestDo_SecondUnauthorized(t *testing.T) {
	var resourceCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/users/stats", func(w http.ResponseWriter, r *http.Request) {
		resourceCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "new-access", "refreshToken": "new-refresh"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := withSession("stale-access", "refresh-token")
	client := NewClient(server.URL, store, nil)

	_, err := client.GetStats(context.Background())
	assert.ErrorIs(t, err, ErrAuthExpired)
	assert.Equal(t, 2, resourceCalls)
}

// Payloads arrive either wrapped in a {"data": ...} envelope or bare;
// both decode to the same result.
func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare", `{"totalFiles": 5, "storageUsed": 10, "sharedFiles": 1, "totalDownloads": 0}`},
		{"enveloped", `{"data": {"totalFiles": 5, "storageUsed": 10, "sharedFiles": 1, "totalDownloads": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats models.UserStats
			require.NoError(t, decodeResponse([]byte(tt.body), &stats))
			assert.Equal(t, 5, stats.TotalFiles)
			assert.EqualValues(t, 10, stats.StorageUsed)
		})
	}
}

func TestDecodeResponse_Invalid(t *testing.T) {
	var stats models.UserStats
	assert.Error(t, decodeResponse([]byte(`not json`), &stats))
}

func TestServerError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error": "file not found"}`, "server error (404): file not found"},
		{"detail field", `{"detail": "not found"}`, "server error (404): not found"},
		{"message field", `{"message": "gone"}`, "server error (404): gone"},
		{"plain body", `oops`, "request failed with status 404: oops"},
		{"empty body", ``, "request failed with status 404: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := serverError(http.StatusNotFound, []byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestDo_ServerErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "premium required"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	_, err := client.GetStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "premium required")
}
