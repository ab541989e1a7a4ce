package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UploadFile(t *testing.T) {
	content := strings.Repeat("x", 64*1024)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/files/upload", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Len(t, data, len(content))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "file-1", "name": "report.pdf", "size": 65536}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	var progress []float64
	resp, err := client.UploadFile(context.Background(), "report.pdf",
		strings.NewReader(content), int64(len(content)),
		func(pct float64) { progress = append(progress, pct) })
	require.NoError(t, err)
	assert.Equal(t, "file-1", resp.ID)

	// Progress is monotonic and ends at 100.
	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.EqualValues(t, 100, progress[len(progress)-1])
}

func TestClient_UploadFile_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the pipe writer finishes.
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error": "file too large"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	_, err := client.UploadFile(context.Background(), "big.pdf",
		strings.NewReader("data"), 4, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")
}

func TestClient_DownloadFile(t *testing.T) {
	content := []byte("file body bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/files/file-1/download", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.Write(content)
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	var buf bytes.Buffer
	n, err := client.DownloadFile(context.Background(), "file-1", &buf)
	require.NoError(t, err)
	assert.EqualValues(t, len(content), n)
	assert.Equal(t, content, buf.Bytes())
}

func TestClient_DownloadFile_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "file not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	var buf bytes.Buffer
	_, err := client.DownloadFile(context.Background(), "missing", &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
	assert.Zero(t, buf.Len())
}

func TestProgressReader(t *testing.T) {
	data := strings.Repeat("a", 1000)
	var last float64
	pr := &progressReader{
		r:          strings.NewReader(data),
		total:      int64(len(data)),
		onProgress: func(pct float64) { last = pct },
	}

	n, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)
	assert.EqualValues(t, len(data), n)
	assert.EqualValues(t, 100, last)
}

// A lying size never pushes the percentage past 100.
func TestProgressReader_Clamped(t *testing.T) {
	var last float64
	pr := &progressReader{
		r:          strings.NewReader("more than two bytes"),
		total:      2,
		onProgress: func(pct float64) { last = pct },
	}

	_, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)
	assert.EqualValues(t, 100, last)
}
