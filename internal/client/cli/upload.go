package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/blackfile/blackfile-cli/internal/client/upload"
)

func (c *Cli) runUpload(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: blackfile upload PATH...")
	}

	started := make(map[string]string, len(args)) // task id -> file name
	for _, path := range args {
		id, err := c.uploads.Add(ctx, path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		started[id] = filepath.Base(path)
	}

	failed := c.watchUploads(started)

	if failed > 0 {
		return fmt.Errorf("%d of %d upload(s) failed", failed, len(started))
	}
	c.io.Printf("Uploaded %d file(s).\n", len(started))
	return nil
}

// watchUploads polls the manager and prints progress until every
// started task reached a terminal state. Returns the failure count.
func (c *Cli) watchUploads(started map[string]string) int {
	lastShown := make(map[string]float64, len(started))
	done := make(map[string]bool, len(started))
	failed := 0

	for len(done) < len(started) {
		visible := make(map[string]bool, len(started))
		for _, task := range c.uploads.Tasks() {
			visible[task.ID] = true
			name, mine := started[task.ID]
			if !mine || done[task.ID] {
				continue
			}
			switch task.Status {
			case upload.StatusUploading:
				// Reprint only on visible movement.
				if task.Progress-lastShown[task.ID] >= 10 {
					lastShown[task.ID] = task.Progress
					c.io.Printf("  %s: %.0f%%\n", name, task.Progress)
				}
			case upload.StatusCompleted:
				done[task.ID] = true
				c.io.Printf("  %s: done\n", name)
			case upload.StatusError:
				done[task.ID] = true
				failed++
				c.io.Printf("  %s: failed: %v\n", name, task.Err)
			}
		}
		// A completed task may auto-remove before we saw its terminal
		// state; a vanished task finished successfully.
		for id, name := range started {
			if !done[id] && !visible[id] {
				done[id] = true
				c.io.Printf("  %s: done\n", name)
			}
		}
		if len(done) < len(started) {
			time.Sleep(100 * time.Millisecond)
		}
	}

	c.uploads.Wait()
	return failed
}

func (c *Cli) runDownload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	output := fs.String("o", "", "output path (defaults to the file id)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: blackfile download ID [-o PATH]")
	}
	fileID := fs.Arg(0)

	dest := *output
	if dest == "" {
		dest = fileID
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}

	n, err := c.api.DownloadFile(ctx, fileID, f)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return err
	}

	c.io.Printf("Saved %s (%s)\n", dest, FormatSize(n))
	return nil
}
