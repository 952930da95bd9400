package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus(ctx context.Context) string {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil || user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", user.Email)
}

// Root runs the interactive shell loop. It first offers to restore a
// previous session, then reads commands until EOF or an explicit exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "SCB vault shell (type 'help' for commands)")

	a.offerRestore(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(a.out, "scb %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(a.out, "Available commands: whoami, profile, view, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "profile":
			a.EditProfile(ctx)
		case "view":
			if len(parts) > 1 {
				if err := a.shell.SetDashboardView(ctx, parts[1]); err != nil {
					fmt.Fprintf(a.out, "error: %v\n", err)
					continue
				}
				if err := a.shell.Save(ctx, a.isLoggedIn(ctx), parts[1]); err != nil {
					fmt.Fprintf(a.out, "error: %v\n", err)
				}
				continue
			}
			view, err := a.shell.DashboardView(ctx)
			if err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
				continue
			}
			if view == "" {
				fmt.Fprintln(a.out, "No view cached")
			} else {
				fmt.Fprintln(a.out, view)
			}
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}
