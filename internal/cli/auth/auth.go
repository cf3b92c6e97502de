package auth

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/models"
)

type GuestCmd struct{}

func (c *GuestCmd) Run(ctx *cli.Context) error {
	user, err := ctx.Session.ContinueAsGuest()
	if err != nil {
		return fmt.Errorf("failed to continue as guest: %w", err)
	}
	ctx.Printf("✓ Continuing as guest (%s)\n", user.ID)
	return nil
}

type SignInCmd struct {
	Email string `help:"Email address." required:""`
	Name  string `help:"Full name."`
	ID    string `help:"User id. Defaults to the email address."`
}

func (c *SignInCmd) Run(ctx *cli.Context) error {
	id := c.ID
	if id == "" {
		id = c.Email
	}
	email, name := c.Email, c.Name
	user := models.User{ID: id, Email: &email, FullName: &name}

	if err := ctx.Session.SignIn(user); err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	current, _ := ctx.Session.Current()
	ctx.Printf("✓ Signed in as %s\n", current.DisplayName())
	return nil
}

type SignOutCmd struct{}

func (c *SignOutCmd) Run(ctx *cli.Context) error {
	if _, ok := ctx.Session.Current(); !ok {
		ctx.Println("Not signed in.")
		return nil
	}
	if err := ctx.Session.SignOut(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	ctx.Println("✓ Signed out. Your journal entries are kept on this device.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	user, ok := ctx.Session.Current()
	if !ok {
		return errors.New("not signed in. Use 'daylog auth guest' or 'daylog auth signin'")
	}

	ctx.Printf("Name:  %s\n", user.DisplayName())
	ctx.Printf("ID:    %s\n", user.ID)
	if user.Email != nil {
		ctx.Printf("Email: %s\n", *user.Email)
	}
	if user.IsAnonymous {
		ctx.Println("Guest: yes")
	}
	return nil
}
