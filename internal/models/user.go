package models

// UserProfile is the account as the backend reports it. The profile is
// cached in the session store for fast startup and superseded by every
// successful profile fetch.
type UserProfile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	IsPremium    bool   `json:"isPremium"`
	StorageLimit int64  `json:"storageLimit"`
	StorageUsed  int64  `json:"storageUsed"`
	CreatedAt    string `json:"createdAt"`
}

// UserStats holds the aggregate dashboard counters.
type UserStats struct {
	TotalFiles     int   `json:"totalFiles"`
	StorageUsed    int64 `json:"storageUsed"`
	SharedFiles    int   `json:"sharedFiles"`
	TotalDownloads int   `json:"totalDownloads"`
}
