package api

import (
	"net/url"
	"strconv"

	"github.com/blackfile/blackfile-cli/internal/models"
)

// ListFilesParams are the optional query parameters of GET /files/.
type ListFilesParams struct {
	Page      int
	Limit     int
	Search    string
	Type      string
	SortBy    string
	SortOrder string
}

// Values encodes the non-zero parameters as a query string.
func (p ListFilesParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Type != "" {
		v.Set("type", p.Type)
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	return v
}

// FileListResponse is one page of the user's file list.
type FileListResponse struct {
	Files      []models.FileItem `json:"files"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// UploadResponse describes the file created by POST /files/upload.
type UploadResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	UploadDate string `json:"uploadDate"`
	URL        string `json:"url"`
}

// StarRequest toggles the starred flag of a file.
type StarRequest struct {
	Starred bool `json:"starred"`
}

// RenameRequest sets a new display name for a file.
type RenameRequest struct {
	Name string `json:"name"`
}

// SetSharedRequest flips the shared flag; a false value revokes the
// public link.
type SetSharedRequest struct {
	Shared bool `json:"shared"`
}

// ShareLinkResponse is the result of creating a public share link.
type ShareLinkResponse struct {
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}

// Reaction values accepted by the public like endpoint.
const (
	LikeActionLike    = "like"
	LikeActionDislike = "dislike"
	LikeActionRemove  = "remove"
)

// LikeRequest sets the caller's reaction to a shared file. The call is
// idempotent by intent: it states the desired reaction, not a delta.
type LikeRequest struct {
	Action string `json:"action"`
}

// LikeResponse returns the counters after a reaction change.
// UserReaction is nil when the caller has no active reaction.
type LikeResponse struct {
	Likes        int     `json:"likes"`
	Dislikes     int     `json:"dislikes"`
	UserReaction *string `json:"userReaction"`
}
