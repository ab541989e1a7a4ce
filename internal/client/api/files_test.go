package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

func TestClient_ListFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/files/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "report", r.URL.Query().Get("search"))
		assert.Equal(t, "documents", r.URL.Query().Get("type"))
		assert.Equal(t, "size", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "desc", r.URL.Query().Get("sortOrder"))

		w.Write([]byte(`{"data": {
			"files": [{"id": "file-1", "name": "report.pdf", "size": 2048}],
			"total": 1, "page": 2, "totalPages": 2
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	resp, err := client.ListFiles(context.Background(), pkgapi.ListFilesParams{
		Page:      2,
		Search:    "report",
		Type:      "documents",
		SortBy:    "size",
		SortOrder: "desc",
	})
	require.NoError(t, err)
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "report.pdf", resp.Files[0].Name)
	assert.Equal(t, 2, resp.Page)
}

func TestClient_ListFiles_NoParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		w.Write([]byte(`{"files": [], "total": 0, "page": 1, "totalPages": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	resp, err := client.ListFiles(context.Background(), pkgapi.ListFilesParams{})
	require.NoError(t, err)
	assert.Empty(t, resp.Files)
}

func TestClient_DeleteFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/files/file-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)
	assert.NoError(t, client.DeleteFile(context.Background(), "file-1"))
}

func TestClient_StarFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/files/file-1/star", r.URL.Path)

		var req pkgapi.StarRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Starred)

		w.Write([]byte(`{"id": "file-1", "name": "report.pdf", "isStarred": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	file, err := client.StarFile(context.Background(), "file-1", true)
	require.NoError(t, err)
	assert.True(t, file.IsStarred)
}

func TestClient_RenameFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/files/file-1/rename", r.URL.Path)

		var req pkgapi.RenameRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new-name.pdf", req.Name)

		w.Write([]byte(`{"id": "file-1", "name": "new-name.pdf"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	file, err := client.RenameFile(context.Background(), "file-1", "new-name.pdf")
	require.NoError(t, err)
	assert.Equal(t, "new-name.pdf", file.Name)
}

func TestClient_CreateShareLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/files/file-1/share", r.URL.Path)
		w.Write([]byte(`{"shareId": "share-abc", "shareUrl": "https://blackfile.xyz/share/share-abc"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	resp, err := client.CreateShareLink(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, "share-abc", resp.ShareID)
	assert.Equal(t, "https://blackfile.xyz/share/share-abc", resp.ShareURL)
}

func TestClient_SetShared(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/files/file-1/share", r.URL.Path)

		var req pkgapi.SetSharedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Shared)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)
	assert.NoError(t, client.SetShared(context.Background(), "file-1", false))
}

// The public share view carries no bearer token even when a session is
// stored locally.
func TestClient_GetSharedFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/files/share/share-abc", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Write([]byte(`{"data": {
			"shareId": "share-abc", "fileName": "report.pdf",
			"fileType": "application/pdf", "fileSize": 2048,
			"views": 10, "likes": 3, "dislikes": 1
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	file, err := client.GetSharedFile(context.Background(), "share-abc")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", file.FileName)
	assert.Equal(t, 10, file.Views)
}

// A 401 on the public share path is a plain server error and its body
// message must survive; it never triggers a token refresh.
func TestClient_GetSharedFile_Unauthorized(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "share link has expired"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	_, err := client.GetSharedFile(context.Background(), "share-abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share link has expired")
	assert.Equal(t, 1, calls)
}

func TestClient_LikeSharedFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/files/share/share-abc/like", r.URL.Path)

		var req pkgapi.LikeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, pkgapi.LikeActionLike, req.Action)

		w.Write([]byte(`{"likes": 4, "dislikes": 1, "userReaction": "like"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	resp, err := client.LikeSharedFile(context.Background(), "share-abc", pkgapi.LikeActionLike)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Likes)
	require.NotNil(t, resp.UserReaction)
	assert.Equal(t, "like", *resp.UserReaction)
}

func TestClient_GetFileAnalytics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-1/analytics", r.URL.Path)
		w.Write([]byte(`{"fileId": "file-1", "fileName": "report.pdf",
			"views": 100, "viewsToday": 5, "topCountries": ["DE", "US"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	analytics, err := client.GetFileAnalytics(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, 100, analytics.Views)
	assert.Equal(t, []string{"DE", "US"}, analytics.TopCountries)
}

func TestClient_GetFilePreview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/files/file-1/preview", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data": "https://cdn.blackfile.xyz/previews/file-1?sig=abc"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, withSession("access", "refresh"), nil)

	url, err := client.GetFilePreview(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.blackfile.xyz/previews/file-1?sig=abc", url)
}

func TestClient_SharedFilePreviewURL(t *testing.T) {
	client := NewClient("https://blackfile.xyz/api/v1", &memStorage{}, nil)
	assert.Equal(t,
		"https://blackfile.xyz/api/v1/files/share/share-abc/preview",
		client.SharedFilePreviewURL("share-abc"))
}
