package cli

import (
	"context"
	"flag"

	"github.com/blackfile/blackfile-cli/internal/models"
	"github.com/blackfile/blackfile-cli/internal/validation"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" && *email == "" {
		profile, err := c.api.GetProfile(ctx)
		if err != nil {
			return err
		}
		c.session.UpdateUser(ctx, profile)
		c.printProfile(profile)
		return nil
	}

	var req pkgapi.UpdateProfileRequest
	if *username != "" {
		if err := validation.ValidateUsername(*username); err != nil {
			return err
		}
		req.Username = username
	}
	if *email != "" {
		if err := validation.ValidateEmail(*email); err != nil {
			return err
		}
		req.Email = email
	}

	profile, err := c.api.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	c.session.UpdateUser(ctx, profile)
	c.io.Println("Profile updated.")
	c.printProfile(profile)
	return nil
}

func (c *Cli) runStats(ctx context.Context) error {
	stats, err := c.api.GetStats(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("Files:      %d\n", stats.TotalFiles)
	c.io.Printf("Storage:    %s\n", FormatSize(stats.StorageUsed))
	c.io.Printf("Shared:     %d\n", stats.SharedFiles)
	c.io.Printf("Downloads:  %d\n", stats.TotalDownloads)
	return nil
}

func (c *Cli) printProfile(profile *models.UserProfile) {
	c.io.Printf("Username:  %s\n", profile.Username)
	c.io.Printf("Email:     %s\n", profile.Email)
	if profile.IsPremium {
		c.io.Println("Plan:      premium")
	} else {
		c.io.Println("Plan:      free")
	}
	if profile.StorageLimit > 0 {
		c.io.Printf("Storage:   %s of %s used\n",
			FormatSize(profile.StorageUsed), FormatSize(profile.StorageLimit))
	}
	if profile.CreatedAt != "" {
		c.io.Printf("Member since: %s\n", profile.CreatedAt)
	}
}
