package cli

import (
	"context"
	"errors"
	"os"

	"github.com/momento-app/momento/internal/client/api"
)

// printAuthFailure renders an authentication failure the way the feed UI
// would: the remote's reason inline for rejected credentials, a generic
// message for transport trouble.
func printAuthFailure(err error) {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		printlnFn("Authentication failed:", authErr.Reason)
		return
	}
	printlnFn("Could not reach the server, please try again later")
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		printAuthFailure(err)
		return err
	}

	printlnFn("Logged in as", email)

	if err := a.feed.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "could not refresh feed after login", "error", err)
	}
	return nil
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Signup(ctx, email, string(password)); err != nil {
		printAuthFailure(err)
		return err
	}

	printlnFn("Welcome to Momento,", email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		// The local session is gone regardless; just mention the remote.
		a.log.Warn(ctx, "remote logout failed", "error", err)
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn("Logged in as", u.Email, "(id "+u.ID+")")
	if exp, ok := a.api.SessionExpiry(); ok {
		printlnFn("Session expires at", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
