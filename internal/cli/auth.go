package cli

import (
	"context"
	"os"

	"github.com/akazarov/authgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and attempts to authenticate. The error
// coming back from the core (e.g. "invalid email or password") is printed
// verbatim; the password buffer is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if err := a.sessions.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Successfully logged in!")
	return nil
}

// Register prompts for a name, email, and password and attempts to create an
// account. A successful registration leaves the user logged in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if err := a.sessions.Register(ctx, name, email, string(password)); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Registration successful! Welcome.")
	return nil
}

// Logout drops the session. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	printlnFn("You have been logged out.")
	return nil
}
