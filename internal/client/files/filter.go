package files

import (
	"sort"
	"strings"
	"time"

	"github.com/blackfile/blackfile-cli/internal/models"
)

// SortBy selects the sort key of the derived view.
type SortBy string

// Sort keys
const (
	SortByName SortBy = "name"
	SortByDate SortBy = "date"
	SortBySize SortBy = "size"
	SortByType SortBy = "type"
)

// Order is the sort direction.
type Order string

// Sort directions
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// FilterType is the coarse file-type category of the dashboard filter.
type FilterType string

// Filter categories
const (
	FilterAll       FilterType = "all"
	FilterImages    FilterType = "images"
	FilterDocuments FilterType = "documents"
	FilterVideos    FilterType = "videos"
	FilterAudio     FilterType = "audio"
)

// matchesCategory applies the dashboard's MIME category rules.
func matchesCategory(file models.FileItem, filter FilterType) bool {
	switch filter {
	case FilterImages:
		return strings.HasPrefix(file.Type, "image/")
	case FilterDocuments:
		return strings.Contains(file.Type, "pdf") ||
			strings.Contains(file.Type, "document") ||
			strings.Contains(file.Type, "text")
	case FilterVideos:
		return strings.HasPrefix(file.Type, "video/")
	case FilterAudio:
		return strings.HasPrefix(file.Type, "audio/")
	default:
		return true
	}
}

// parseUploadDate tolerates the two timestamp layouts the backend has
// emitted; unparseable dates sort first.
func parseUploadDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FilterSort derives the presentation view: a case-insensitive
// substring match on the name, the category filter, then a stable sort
// by the chosen key. It is a pure function of its inputs and never
// mutates the given slice.
func FilterSort(files []models.FileItem, query string, filter FilterType, sortBy SortBy, order Order) []models.FileItem {
	queryLower := strings.ToLower(query)

	filtered := make([]models.FileItem, 0, len(files))
	for _, f := range files {
		if !strings.Contains(strings.ToLower(f.Name), queryLower) {
			continue
		}
		if !matchesCategory(f, filter) {
			continue
		}
		filtered = append(filtered, f)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		var less bool
		switch sortBy {
		case SortByName:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortBySize:
			less = a.Size < b.Size
		case SortByType:
			less = a.Type < b.Type
		default: // SortByDate
			less = parseUploadDate(a.UploadDate).Before(parseUploadDate(b.UploadDate))
		}
		if order == OrderDesc {
			return !less && !equalKey(a, b, sortBy)
		}
		return less
	})

	return filtered
}

// equalKey keeps the descending comparator irreflexive.
func equalKey(a, b models.FileItem, sortBy SortBy) bool {
	switch sortBy {
	case SortByName:
		return strings.EqualFold(a.Name, b.Name)
	case SortBySize:
		return a.Size == b.Size
	case SortByType:
		return a.Type == b.Type
	default:
		return parseUploadDate(a.UploadDate).Equal(parseUploadDate(b.UploadDate))
	}
}
