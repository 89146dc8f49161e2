package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoaxify/hoaxify-cli/internal/client/api"
	"github.com/hoaxify/hoaxify-cli/internal/client/services"
	"github.com/hoaxify/hoaxify-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the account fields and creates the account. On
// success the signup chain has already logged the user in. The password
// buffers are wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	displayName, err := getSimpleText(a.reader, "Display name", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	if string(password) != string(repeat) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	user, err := a.auth.Signup(ctx, api.SignupRequest{
		Username:    username,
		DisplayName: displayName,
		Password:    string(password),
	})
	if err != nil {
		if errors.Is(err, services.ErrLoginAfterSignup) {
			// the account exists; only the automatic login leg failed
			fmt.Fprintln(a.out, "Account created, but automatic login failed. Use 'login' to sign in.")
			return nil
		}
		printErr(a.out, err)
		return nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName)
	return nil
}

// Login prompts for credentials and authenticates. The password buffer
// is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		printErr(a.out, err)
		return nil
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.DisplayName)
	return nil
}

// Logout clears the session; the next request carries no credentials.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printErr(a.out, err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
