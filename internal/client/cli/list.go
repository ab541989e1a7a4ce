package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/blackfile/blackfile-cli/internal/client/files"
)

var validFilters = map[string]files.FilterType{
	"all":       files.FilterAll,
	"images":    files.FilterImages,
	"documents": files.FilterDocuments,
	"videos":    files.FilterVideos,
	"audio":     files.FilterAudio,
}

var validSorts = map[string]files.SortBy{
	"name": files.SortByName,
	"date": files.SortByDate,
	"size": files.SortBySize,
	"type": files.SortByType,
}

func (c *Cli) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	search := fs.String("search", "", "substring to match against file names")
	filterName := fs.String("type", "all", "file category: all, images, documents, videos, audio")
	sortName := fs.String("sort", "date", "sort key: name, date, size, type")
	orderName := fs.String("order", "desc", "sort direction: asc, desc")
	cached := fs.Bool("cached", false, "show the locally cached list without contacting the server")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, ok := validFilters[*filterName]
	if !ok {
		return fmt.Errorf("unknown file type %q", *filterName)
	}
	sortBy, ok := validSorts[*sortName]
	if !ok {
		return fmt.Errorf("unknown sort key %q", *sortName)
	}
	var order files.Order
	switch *orderName {
	case "asc":
		order = files.OrderAsc
	case "desc":
		order = files.OrderDesc
	default:
		return fmt.Errorf("unknown sort direction %q", *orderName)
	}

	if *cached {
		if err := c.files.LoadCached(ctx); err != nil {
			return fmt.Errorf("no cached file list: %w", err)
		}
	} else {
		if err := c.files.Load(ctx); err != nil {
			return err
		}
	}

	c.files.SetSearch(*search)
	c.files.SetFilterType(filter)
	c.files.SetSort(sortBy, order)

	view := c.files.Filtered()
	if len(view) == 0 {
		c.io.Println("No files.")
		return nil
	}

	now := time.Now()
	for _, f := range view {
		marks := " "
		if f.IsStarred {
			marks = "*"
		}
		shared := " "
		if f.IsShared {
			shared = "S"
		}
		c.io.Printf("%s%s %-36s  %10s  %-12s  %s\n",
			marks, shared, f.ID, FormatSize(f.Size), FormatDate(f.UploadDate, now), f.Name)
	}
	c.io.Printf("\n%d file(s)", len(view))
	if total := len(c.files.Files()); total != len(view) {
		c.io.Printf(" (of %d)", total)
	}
	c.io.Println()

	if stats := c.files.Stats(); stats != nil {
		c.io.Printf("Storage used: %s across %d file(s), %d shared\n",
			FormatSize(stats.StorageUsed), stats.TotalFiles, stats.SharedFiles)
	}
	return nil
}
