// Package cli implements the terminal commands of the blackfile
// client. Each command runner takes its collaborators explicitly and
// talks to the terminal only through iocli.IO.
package cli

import (
	"fmt"

	"github.com/blackfile/blackfile-cli/internal/client/api"
	"github.com/blackfile/blackfile-cli/internal/client/auth"
	"github.com/blackfile/blackfile-cli/internal/client/files"
	"github.com/blackfile/blackfile-cli/internal/client/iocli"
	"github.com/blackfile/blackfile-cli/internal/client/upload"
)

// Cli bundles the controllers behind the terminal commands.
type Cli struct {
	io      iocli.IO
	api     *api.Client
	session *auth.Session
	files   *files.Controller
	uploads *upload.Manager
}

// New creates the command dispatcher.
func New(io iocli.IO, apiClient *api.Client, session *auth.Session, fileCtrl *files.Controller, uploads *upload.Manager) *Cli {
	return &Cli{
		io:      io,
		api:     apiClient,
		session: session,
		files:   fileCtrl,
		uploads: uploads,
	}
}

// Notifier adapts the terminal to files.Notifier; transient notices go
// straight to the user.
type Notifier struct {
	io iocli.IO
}

// NewNotifier creates a terminal-backed notifier.
func NewNotifier(io iocli.IO) *Notifier {
	return &Notifier{io: io}
}

// Notify prints the notice.
func (n *Notifier) Notify(message string) {
	n.io.Printf("* %s\n", message)
}

// PrintUsage prints the command overview.
func PrintUsage() {
	fmt.Println("blackfile - file sharing client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  blackfile [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     API base URL (default: http://localhost:8000/api/v1)")
	fmt.Println("  --db PATH        Path to the session store (default: blackfile.db)")
	fmt.Println("  --cache PATH     Path to the dashboard cache (default: blackfile-cache.db)")
	fmt.Println()
	fmt.Println("Account commands:")
	fmt.Println("  register                 Create an account (email verification code required)")
	fmt.Println("  login                    Log in (may ask for a verification code)")
	fmt.Println("  verify-otp USER_ID       Finish a pending verification challenge")
	fmt.Println("  logout                   Log out and clear the stored session")
	fmt.Println("  status                   Show session status")
	fmt.Println("  profile [-email ADDR] [-username NAME]")
	fmt.Println("                           Show or update the account profile")
	fmt.Println("  stats                    Show storage and sharing counters")
	fmt.Println()
	fmt.Println("File commands:")
	fmt.Println("  list [-search Q] [-type T] [-sort KEY] [-order asc|desc] [-cached]")
	fmt.Println("                           List files (types: all, images, documents, videos, audio;")
	fmt.Println("                           sort keys: name, date, size, type)")
	fmt.Println("  upload PATH...           Upload one or more files")
	fmt.Println("  download ID [-o PATH]    Download a file")
	fmt.Println("  delete ID                Delete a file")
	fmt.Println("  star ID | unstar ID      Toggle the star")
	fmt.Println("  rename ID NEW_NAME       Rename a file")
	fmt.Println("  share ID                 Create a public share link")
	fmt.Println("  unshare ID               Revoke the public share link")
	fmt.Println("  preview ID               Print a short-lived preview URL")
	fmt.Println("  analytics ID             Show per-file analytics")
	fmt.Println()
	fmt.Println("Public share commands (no login needed to view):")
	fmt.Println("  shared SHARE_ID          Show a publicly shared file")
	fmt.Println("  like SHARE_ID            Like a shared file")
	fmt.Println("  dislike SHARE_ID         Dislike a shared file")
	fmt.Println("  unreact SHARE_ID         Remove your reaction")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  blackfile login")
	fmt.Println("  blackfile upload report.pdf photo.jpg")
	fmt.Println("  blackfile list -type images -sort size -order desc")
	fmt.Println("  blackfile share b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  blackfile --server https://blackfile.xyz/api/v1 status")
}
