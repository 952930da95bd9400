package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/igwenababa1/scbvault/internal/common"
	"github.com/igwenababa1/scbvault/internal/models"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Authenticate(ctx, email, string(password))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorInvalidCredential):
			fmt.Fprintln(a.out, "Invalid email or password")
		case errors.Is(err, common.ErrorOperationInFlight):
			fmt.Fprintln(a.out, "Another sign-in is already in progress")
		default:
			fmt.Fprintf(a.out, "Login failed: %v\n", err)
		}
		return
	}

	if err := a.shell.Save(ctx, true, models.LandingView); err != nil {
		a.logger.Warn(ctx, "saving shell snapshot", "error", err)
	}
	fmt.Fprintf(a.out, "Welcome back, %s\n", user.Profile.FullName)
}

func (a *App) Register(ctx context.Context) {
	var reg models.Registration
	var err error

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter first name", &reg.FirstName},
		{"Enter last name", &reg.LastName},
		{"Enter email", &reg.Email},
		{"Enter phone", &reg.Phone},
		{"Enter country", &reg.Country},
	}
	for _, p := range prompts {
		*p.dst, err = GetSimpleText(a.reader, p.label, a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)
	reg.Password = string(password)

	user, err := a.auth.Register(ctx, reg)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			fmt.Fprintln(a.out, "An account with this email already exists")
		case errors.Is(err, common.ErrorOperationInFlight):
			fmt.Fprintln(a.out, "Another registration is already in progress")
		default:
			fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		}
		return
	}

	if err := a.shell.Save(ctx, true, models.LandingView); err != nil {
		a.logger.Warn(ctx, "saving shell snapshot", "error", err)
	}
	fmt.Fprintf(a.out, "Account created for %s\n", user.Email)
}

func (a *App) WhoAmI(ctx context.Context) {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Profile.FullName, user.Email)
	if user.Profile.Phone != "" {
		fmt.Fprintf(a.out, "  phone:   %s\n", user.Profile.Phone)
	}
	if user.Profile.Address != "" {
		fmt.Fprintf(a.out, "  address: %s\n", user.Profile.Address)
	}
}

// EditProfile lets the user change individual profile fields. Empty input
// keeps the current value.
func (a *App) EditProfile(ctx context.Context) {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	settings := user.Settings.Clone()
	fields := []struct {
		label string
		dst   *string
	}{
		{"Full name", &settings.Profile.FullName},
		{"Phone", &settings.Profile.Phone},
		{"Address", &settings.Profile.Address},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, *f.dst), a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		if v != "" {
			*f.dst = v
		}
	}

	if err := a.auth.UpdateProfile(ctx, settings); err != nil {
		fmt.Fprintf(a.out, "Profile update failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Profile updated")
}

func (a *App) Logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if err := a.shell.Discard(ctx); err != nil {
		a.logger.Warn(ctx, "discarding shell snapshot", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out")
}

// offerRestore checks for a previous shell snapshot on startup and asks the
// user whether to resume it, mirroring the restore prompt a returning
// browser session would see.
func (a *App) offerRestore(ctx context.Context) {
	snap, err := a.shell.Offer(ctx)
	if err != nil {
		a.logger.Warn(ctx, "loading shell snapshot", "error", err)
		return
	}
	if snap == nil {
		return
	}

	answer, err := GetSimpleText(a.reader,
		fmt.Sprintf("A previous session from %s was found. Resume it? (y/n)",
			snap.Timestamp.Format("2006-01-02 15:04")), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if answer == "y" || answer == "yes" {
		restored, err := a.shell.Restore(ctx)
		if err != nil || restored == nil {
			fmt.Fprintf(a.out, "Restore failed: %v\n", err)
			return
		}
		fmt.Fprintf(a.out, "Session restored at view %q\n", restored.View)
		return
	}

	if err := a.shell.Discard(ctx); err != nil {
		fmt.Fprintf(a.out, "Discard failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Previous session discarded")
}
