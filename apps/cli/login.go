package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/hudhura/core"
	"github.com/trezcool/hudhura/core/session"
)

// The same fixed line for a wrong username and a wrong password; the server's
// rejection detail is never echoed here.
const invalidCredentialsMsg = "Invalid username or password."

func (cli *commandLine) loginView(ctx context.Context) error {
	fmt.Fprintf(cli.out, "\nSign in to %s\n", cli.conf.AppName)
	fmt.Fprint(cli.out, "Username: ")
	username, err := cli.readLine()
	if err != nil {
		return err
	}
	fmt.Fprint(cli.out, "Password: ")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}

	err = cli.sessSvc.Login(ctx, session.Credentials{Username: username, Password: string(pwd)})
	switch cause := errors.Cause(err).(type) {
	case nil:
		// the credentials landed but the follow-up session check may still
		// have torn everything down
		if cli.sessSvc.State() != session.StateAuthenticated {
			fmt.Fprintln(cli.out, connectionErrMsg)
			return errNotSignedIn
		}
		fmt.Fprintf(cli.out, "Welcome, %s!\n", cli.sessSvc.Profile().FullName())
		return nil
	case validator.ValidationErrors:
		for _, vErr := range cause {
			fmt.Fprintf(cli.out, "%s: %s\n", vErr.Field(), vErr.Translate(core.Translator))
		}
		return err
	default:
		if cause == session.ErrInvalidCredentials {
			fmt.Fprintln(cli.out, invalidCredentialsMsg)
		} else {
			fmt.Fprintf(cli.out, "%s\n", userMessage(err))
		}
		return err
	}
}
