package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackfile/blackfile-cli/internal/validation"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}
	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	resp, err := c.api.Register(ctx, pkgapi.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}

	if resp.Message != "" {
		c.io.Println(resp.Message)
	}
	if !resp.RequiresOTP {
		c.io.Println("Account created. Run 'blackfile login' to sign in.")
		return nil
	}

	c.io.Printf("A verification code was sent to %s.\n", email)
	if err := c.promptOTP(ctx, resp.UserID); err != nil {
		return fmt.Errorf("%w (retry with 'blackfile verify-otp %s')", err, resp.UserID)
	}
	c.printWelcome()
	return nil
}

func (c *Cli) runLogin(ctx context.Context) error {
	username, err := c.io.ReadInput("Username or email: ")
	if err != nil {
		return err
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return err
	}

	result, err := c.session.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if result.RequiresOTP {
		c.io.Println("A verification code was sent to your email.")
		if err := c.promptOTP(ctx, result.UserID); err != nil {
			return fmt.Errorf("%w (retry with 'blackfile verify-otp %s')", err, result.UserID)
		}
	}

	c.printWelcome()
	return nil
}

// runVerifyOTP finishes a challenge from an earlier register or login
// run; the user id was printed when the challenge was issued.
func (c *Cli) runVerifyOTP(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: blackfile verify-otp USER_ID")
	}

	if err := c.promptOTP(ctx, args[0]); err != nil {
		return err
	}
	c.printWelcome()
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.session.Logout(ctx)
	// The cached dashboard belongs to the account that just left
	if err := c.files.Reset(ctx); err != nil {
		c.io.Printf("Warning: %v\n", err)
	}
	c.io.Println("Logged out.")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.session.Init(ctx)

	if !c.session.IsAuthenticated() {
		c.io.Println("Not logged in.")
		return nil
	}

	c.io.Println("Logged in.")
	if user := c.session.User(); user != nil {
		c.io.Printf("  Username: %s\n", user.Username)
		c.io.Printf("  Email:    %s\n", user.Email)
		if user.IsPremium {
			c.io.Println("  Plan:     premium")
		} else {
			c.io.Println("  Plan:     free")
		}
		if user.StorageLimit > 0 {
			c.io.Printf("  Storage:  %s of %s used\n",
				FormatSize(user.StorageUsed), FormatSize(user.StorageLimit))
		}
	}
	return nil
}

// promptOTP runs the verification code prompt loop; the user gets three
// attempts before the command gives up.
func (c *Cli) promptOTP(ctx context.Context, userID string) error {
	const maxAttempts = 3

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := c.io.ReadInput("Verification code: ")
		if err != nil {
			return err
		}
		lastErr = c.session.VerifyOTP(ctx, userID, strings.TrimSpace(code))
		if lastErr == nil {
			return nil
		}
		c.io.Printf("Verification failed: %v\n", lastErr)
	}
	return fmt.Errorf("verification failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Cli) printWelcome() {
	if user := c.session.User(); user != nil && user.Username != "" {
		c.io.Printf("Welcome, %s!\n", user.Username)
		return
	}
	c.io.Println("Logged in.")
}
