package cli

import (
	"context"
	"fmt"
	"time"
)

// Public share commands work without a login; the requests carry no
// bearer token at all.

func (c *Cli) runShared(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile shared SHARE_ID")
	}

	file, err := c.api.GetSharedFile(ctx, args[0])
	if err != nil {
		return err
	}

	c.io.Printf("%s\n", file.FileName)
	c.io.Printf("  Type:     %s\n", file.FileType)
	c.io.Printf("  Size:     %s\n", FormatSize(file.FileSize))
	c.io.Printf("  Uploaded: %s\n", FormatDate(file.UploadDate, time.Now()))
	c.io.Printf("  Views:    %d\n", file.Views)
	c.io.Printf("  Likes:    %d   Dislikes: %d\n", file.Likes, file.Dislikes)
	c.io.Printf("  Preview:  %s\n", c.api.SharedFilePreviewURL(file.ShareID))
	return nil
}

func (c *Cli) runLike(ctx context.Context, args []string, action string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile %s SHARE_ID", commandForAction(action))
	}

	resp, err := c.api.LikeSharedFile(ctx, args[0], action)
	if err != nil {
		return err
	}

	reaction := "none"
	if resp.UserReaction != nil {
		reaction = *resp.UserReaction
	}
	c.io.Printf("Likes: %d   Dislikes: %d   Your reaction: %s\n",
		resp.Likes, resp.Dislikes, reaction)
	return nil
}

func commandForAction(action string) string {
	if action == "remove" {
		return "unreact"
	}
	return action
}
