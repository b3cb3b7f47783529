package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/hudhura/core"
	"github.com/trezcool/hudhura/core/session"
)

// shell is the interactive mode: it resolves the stored session once, then
// loops between the sign-in prompt and the role-gated menu until the user
// quits. Which menu entries exist depends solely on the profile's role; the
// server still enforces every permission on its side.
func (cli *commandLine) shell(ctx context.Context) error {
	fmt.Fprintf(cli.out, "%s\n", cli.conf.AppName)
	fmt.Fprintln(cli.out, "Loading...")
	if err := cli.sessSvc.CheckSession(ctx); err != nil {
		cli.log.Warn("resolving stored session", err)
	}

	for {
		if cli.sessSvc.State() != session.StateAuthenticated {
			if err := cli.loginView(ctx); err != nil {
				if errors.Cause(err) == io.EOF {
					return nil
				}
				// message already shown; prompt again
			}
			continue
		}

		quit, err := cli.menu(ctx)
		if err != nil {
			if apiErr, ok := core.AsAPIError(err); ok && apiErr.IsAuthFailure() {
				fmt.Fprintln(cli.out, "Your session has expired. Please sign in again.")
				if err := cli.sessSvc.Logout(); err != nil {
					cli.log.Warn("tearing down expired session", err)
				}
				continue
			}
			fmt.Fprintf(cli.out, "%s\n", userMessage(err))
		}
		if quit {
			return nil
		}
	}
}

func (cli *commandLine) menu(ctx context.Context) (quit bool, err error) {
	profile := cli.sessSvc.Profile()

	items := []string{"schedule"}
	switch {
	case profile.Role.IsStudent():
		items = append(items, "scan")
	case profile.Role.IsTeacher():
		items = append(items, "lesson ID")
	case profile.Role.IsAdmin():
		items = append(items, "lesson ID", "qr ID")
	}
	items = append(items, "profile", "logout", "quit")

	fmt.Fprintf(cli.out, "\n%s (%s)\n", profile.FullName(), profile.Role)
	fmt.Fprintf(cli.out, "commands: %s\n> ", strings.Join(items, " | "))

	line, err := cli.readLine()
	if err != nil {
		if errors.Cause(err) == io.EOF {
			return true, nil
		}
		return false, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "schedule", "s":
		return false, cli.scheduleView(ctx)
	case "scan":
		if !profile.Role.IsStudent() {
			break
		}
		return false, cli.scanView(ctx, "")
	case "lesson", "l":
		if profile.Role.IsStudent() {
			break
		}
		if len(fields) < 2 {
			fmt.Fprintln(cli.out, "usage: lesson ID")
			return false, nil
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(cli.out, "lesson id must be a number (got %q)\n", fields[1])
			return false, nil
		}
		return false, cli.lessonDetailView(ctx, id)
	case "qr":
		if !profile.Role.IsAdmin() {
			break
		}
		if len(fields) < 2 {
			fmt.Fprintln(cli.out, "usage: qr ID")
			return false, nil
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(cli.out, "lesson id must be a number (got %q)\n", fields[1])
			return false, nil
		}
		return false, cli.qrView(ctx, id, "")
	case "profile", "p":
		return false, cli.profileView(ctx)
	case "logout":
		if err := cli.sessSvc.Logout(); err != nil {
			return false, err
		}
		fmt.Fprintln(cli.out, "Signed out.")
		return false, nil
	case "quit", "q", "exit":
		return true, nil
	}
	fmt.Fprintln(cli.out, "Unknown command.")
	return false, nil
}

const connectionErrMsg = "Could not reach the server. Check your connection and try again."

// userMessage maps an error to what the user should read. Server rejections
// surface their message verbatim; anything transport-level collapses into a
// generic connection hint.
func userMessage(err error) string {
	if apiErr, ok := core.AsAPIError(err); ok {
		return apiErr.Message
	}
	return connectionErrMsg
}
