// Package users holds the account commands: signup, login, logout, passwd,
// and password reset.
package users

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/mwhitten/tally/internal/auth"
	"github.com/mwhitten/tally/internal/cli"
)

type SignupCmd struct {
	Email string `arg:"" help:"Email address for the new account."`
}

func (c *SignupCmd) Run(ctx *cli.Context) error {
	var password, confirm string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
		huh.NewInput().
			Title("Confirm password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return err
	}

	user, err := ctx.Auth.SignUp(c.Email, password, confirm)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Account created for %s. You are now signed in.\n", user.Email)
	return nil
}

type LoginCmd struct {
	Email string `arg:"" help:"Email address of the account."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.Run(); err != nil {
		return err
	}

	user, err := ctx.Auth.SignInWithPassword(c.Email, password)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Signed in as %s\n", user.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Auth.Resume(); err != nil {
		if errors.Is(err, auth.ErrNotSignedIn) {
			fmt.Println("Not signed in.")
			return nil
		}
		return err
	}
	if err := ctx.Auth.SignOut(); err != nil {
		return err
	}
	fmt.Println("✓ Signed out.")
	return nil
}

type PasswdCmd struct{}

func (c *PasswdCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	var current, next, confirm string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Current password").
			EchoMode(huh.EchoModePassword).
			Value(&current),
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&next),
		huh.NewInput().
			Title("Confirm new password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if err := ctx.Auth.UpdatePassword(current, next, confirm); err != nil {
		return err
	}
	fmt.Println("✓ Password updated.")
	return nil
}

type ResetCmd struct {
	Request ResetRequestCmd `cmd:"" help:"Request a one-time password reset code."`
	Confirm ResetConfirmCmd `cmd:"" help:"Redeem a reset code and set a new password."`
}

type ResetRequestCmd struct {
	Email string `arg:"" help:"Email address of the account."`
}

func (c *ResetRequestCmd) Run(ctx *cli.Context) error {
	code, err := ctx.Auth.RequestPasswordReset(c.Email)
	if err != nil {
		return err
	}

	// There is no mail delivery for a local database, the code is printed
	// for the account owner to redeem.
	fmt.Printf("One-time reset code: %s\n", code)
	fmt.Println("Redeem it with 'tally user reset confirm <code>'. It expires in 30 minutes.")
	return nil
}

type ResetConfirmCmd struct {
	Code string `arg:"" help:"The one-time reset code."`
}

func (c *ResetConfirmCmd) Run(ctx *cli.Context) error {
	var next, confirm string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&next),
		huh.NewInput().
			Title("Confirm new password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return err
	}

	if err := ctx.Auth.ConfirmPasswordReset(c.Code, next, confirm); err != nil {
		return err
	}
	fmt.Println("✓ Password reset. Sign in with 'tally user login'.")
	return nil
}
