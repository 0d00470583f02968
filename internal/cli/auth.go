package cli

import (
	"context"
	"fmt"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
)

// Register prompts for the registration form and creates the account. The
// user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	var data models.RegisterData
	var err error

	if data.Name, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if data.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if data.Phone, err = getSimpleText(a.reader, "Enter phone number", a.out); err != nil {
		return err
	}
	if data.Address, err = getSimpleText(a.reader, "Enter address", a.out); err != nil {
		return err
	}
	if data.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	if confirm != data.Password {
		fmt.Fprintln(a.out, "Passwords do not match")
		return nil
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if _, err := a.session.Register(opCtx, data); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Registration successful! Please log in.")
	return nil
}

// Login prompts for credentials and starts a session. Any earlier session is
// replaced.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	u, err := a.session.Login(opCtx, email, password)
	if err != nil {
		return err
	}
	if u.IsAdmin {
		fmt.Fprintln(a.out, "Welcome, Admin!")
	} else {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Name)
	}
	return nil
}

// Logout ends the session and forgets claims made during it.
func (a *App) Logout(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.session.Logout(opCtx); err != nil {
		return err
	}
	a.rewards.Reset()
	fmt.Fprintln(a.out, "Logged out successfully")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	u, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, msgLoginFirst)
		return nil
	}
	role := "user"
	if u.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", u.Name, u.Email, role)
	if !u.IsAdmin {
		if u.Phone != "" {
			fmt.Fprintf(a.out, "Phone:   %s\n", u.Phone)
		}
		if u.Address != "" {
			fmt.Fprintf(a.out, "Address: %s\n", u.Address)
		}
	}
	fmt.Fprintf(a.out, "Points:  %d\n", u.Points)
	return nil
}
