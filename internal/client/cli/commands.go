package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// Run dispatches a command. Commands that need a logged-in account
// report api.ErrAuthRequired / api.ErrAuthExpired through the returned
// error; main turns those into a "please log in" message.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "verify-otp":
		return c.runVerifyOTP(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "profile":
		return c.runProfile(ctx, args)
	case "stats":
		return c.runStats(ctx)
	case "list":
		return c.runList(ctx, args)
	case "upload":
		return c.runUpload(ctx, args)
	case "download":
		return c.runDownload(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "star":
		return c.runStar(ctx, args, true)
	case "unstar":
		return c.runStar(ctx, args, false)
	case "rename":
		return c.runRename(ctx, args)
	case "share":
		return c.runShare(ctx, args)
	case "unshare":
		return c.runUnshare(ctx, args)
	case "preview":
		return c.runPreview(ctx, args)
	case "analytics":
		return c.runAnalytics(ctx, args)
	case "shared":
		return c.runShared(ctx, args)
	case "like":
		return c.runLike(ctx, args, pkgapi.LikeActionLike)
	case "dislike":
		return c.runLike(ctx, args, pkgapi.LikeActionDislike)
	case "unreact":
		return c.runLike(ctx, args, pkgapi.LikeActionRemove)
	case "help", "":
		PrintUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}
