package main

import (
	"context"
	"fmt"

	"github.com/trezcool/hudhura/core/session"
)

// profileView re-resolves the session first so it never renders a stale
// profile; a failed refresh tears the session down like any other check.
func (cli *commandLine) profileView(ctx context.Context) error {
	if err := cli.sessSvc.CheckSession(ctx); err != nil {
		return err
	}
	if cli.sessSvc.State() != session.StateAuthenticated {
		return errNotSignedIn
	}
	profile := cli.sessSvc.Profile()

	fmt.Fprintf(cli.out, "\n%s\n", profile.FullName())
	fmt.Fprintf(cli.out, "role:     %s\n", profile.Role)
	fmt.Fprintf(cli.out, "username: %s\n", profile.Username)
	if profile.Role.IsStudent() {
		groups := profile.GroupNames()
		if groups == "" {
			groups = "No groups"
		}
		fmt.Fprintf(cli.out, "groups:   %s\n", groups)
	}
	return nil
}
