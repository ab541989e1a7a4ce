package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile delete ID")
	}

	ok, err := c.io.Confirm(fmt.Sprintf("Delete file %s?", args[0]))
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.files.Delete(ctx, args[0]); err != nil {
		return err
	}
	c.io.Println("File deleted.")
	return nil
}

func (c *Cli) runStar(ctx context.Context, args []string, starred bool) error {
	if len(args) != 1 {
		if starred {
			return fmt.Errorf("usage: blackfile star ID")
		}
		return fmt.Errorf("usage: blackfile unstar ID")
	}

	if err := c.files.Star(ctx, args[0], starred); err != nil {
		return err
	}
	if starred {
		c.io.Println("File starred.")
	} else {
		c.io.Println("Star removed.")
	}
	return nil
}

func (c *Cli) runRename(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: blackfile rename ID NEW_NAME")
	}
	name := strings.TrimSpace(args[1])
	if name == "" {
		return fmt.Errorf("new name cannot be empty")
	}

	if err := c.files.Rename(ctx, args[0], name); err != nil {
		return err
	}
	c.io.Printf("Renamed to %s.\n", name)
	return nil
}

func (c *Cli) runShare(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile share ID")
	}

	url, err := c.files.Share(ctx, args[0])
	if err != nil {
		return err
	}
	c.io.Printf("%s\n", url)
	return nil
}

func (c *Cli) runUnshare(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile unshare ID")
	}

	if err := c.files.Unshare(ctx, args[0]); err != nil {
		return err
	}
	return nil
}

func (c *Cli) runPreview(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile preview ID")
	}

	url, err := c.api.GetFilePreview(ctx, args[0])
	if err != nil {
		return err
	}
	c.io.Printf("%s\n", url)
	return nil
}

func (c *Cli) runAnalytics(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile analytics ID")
	}

	a, err := c.api.GetFileAnalytics(ctx, args[0])
	if err != nil {
		return err
	}

	c.io.Printf("%s\n", a.FileName)
	c.io.Printf("  Views:     %d (today %d, week %d, month %d)\n",
		a.Views, a.ViewsToday, a.ViewsThisWeek, a.ViewsThisMonth)
	c.io.Printf("  Likes:     %d\n", a.Likes)
	c.io.Printf("  Dislikes:  %d\n", a.Dislikes)
	c.io.Printf("  Shares:    %d\n", a.Shares)
	if len(a.TopCountries) > 0 {
		c.io.Printf("  Countries: %s\n", strings.Join(a.TopCountries, ", "))
	}
	if len(a.TopReferrers) > 0 {
		c.io.Printf("  Referrers: %s\n", strings.Join(a.TopReferrers, ", "))
	}
	return nil
}
