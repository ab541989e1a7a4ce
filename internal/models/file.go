package models

// FileItem is one entry of the user's file list. The list is replaced
// wholesale on every refresh, so there is no partial-update state here.
// ID is unique within the current list.
type FileItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"` // MIME type
	Size       int64  `json:"size"` // bytes
	UploadDate string `json:"uploadDate"`
	IsStarred  bool   `json:"isStarred"`
	IsShared   bool   `json:"isShared"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Folder     string `json:"folder,omitempty"`
	ShareID    string `json:"shareId,omitempty"`
	Views      int    `json:"views"`
	Likes      int    `json:"likes"`
	Dislikes   int    `json:"dislikes"`
}

// SharedFile is the read-only projection of a file behind a public share
// link, visible to unauthenticated visitors.
type SharedFile struct {
	ID         string `json:"id"`
	FileID     string `json:"fileId"`
	ShareID    string `json:"shareId"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	UploadDate string `json:"uploadDate"`
	Views      int    `json:"views"`
	Likes      int    `json:"likes"`
	Dislikes   int    `json:"dislikes"`
	IsPublic   bool   `json:"isPublic"`
}

// FileAnalytics is the per-file analytics report.
type FileAnalytics struct {
	FileID         string   `json:"fileId"`
	FileName       string   `json:"fileName"`
	Views          int      `json:"views"`
	Likes          int      `json:"likes"`
	Dislikes       int      `json:"dislikes"`
	Shares         int      `json:"shares"`
	ViewsToday     int      `json:"viewsToday"`
	ViewsThisWeek  int      `json:"viewsThisWeek"`
	ViewsThisMonth int      `json:"viewsThisMonth"`
	TopCountries   []string `json:"topCountries"`
	TopReferrers   []string `json:"topReferrers"`
}
