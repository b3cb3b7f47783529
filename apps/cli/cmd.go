package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/hudhura/core"
	"github.com/trezcool/hudhura/core/schedule"
	"github.com/trezcool/hudhura/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	nowFunc          = time.Now          // mockable

	errHelp        = errors.New("help provided")
	errNotSignedIn = errors.New("not signed in; run the login command first")
	errNotAllowed  = errors.New("your account cannot use this command")
)

type commandLine struct {
	conf     *core.Config
	log      core.Logger
	sessSvc  *session.Service
	schedSvc *schedule.Service
	deviceID string

	in  *bufio.Reader
	out io.Writer

	scanBusy bool // single in-flight attendance mark
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  (no command)     - start the interactive shell")
	fmt.Fprintln(cli.out, "  login            - sign in and store the session")
	fmt.Fprintln(cli.out, "  logout           - clear the stored session")
	fmt.Fprintln(cli.out, "  schedule         - list your lessons")
	fmt.Fprintln(cli.out, "  scan [-token]    - mark attendance from a scanned QR payload (students)")
	fmt.Fprintln(cli.out, "  lesson -id ID    - show a lesson's attendance roster (teachers)")
	fmt.Fprintln(cli.out, "  qr -id ID [-out] - show a lesson's QR code (admins)")
	fmt.Fprintln(cli.out, "  profile          - show your profile")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return cli.shell(ctx)
	}

	scanCmd := flag.NewFlagSet("scan", flag.ExitOnError)
	scanToken := scanCmd.String("token", "", "The decoded QR payload. Prompted when omitted.")

	lessonCmd := flag.NewFlagSet("lesson", flag.ExitOnError)
	lessonID := lessonCmd.Int("id", 0, "The lesson's id as shown on the schedule.")

	qrCmd := flag.NewFlagSet("qr", flag.ExitOnError)
	qrID := qrCmd.Int("id", 0, "The lesson's id as shown on the schedule.")
	qrOut := qrCmd.String("out", "", "Optional path to save the server-rendered PNG to.")

	switch args[1] {
	case "login":
		if err := cli.checkSession(ctx); err != nil {
			return err
		}
		if cli.sessSvc.State() == session.StateAuthenticated {
			fmt.Fprintf(cli.out, "Already signed in as %s.\n", cli.sessSvc.Profile().Username)
			return nil
		}
		return cli.loginView(ctx)
	case "logout":
		if err := cli.sessSvc.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Signed out.")
		return nil
	case "schedule":
		if err := cli.requireAuth(ctx); err != nil {
			return err
		}
		return cli.scheduleView(ctx)
	case "scan":
		if err := scanCmd.Parse(args[2:]); err != nil {
			return err
		}
		if err := cli.requireRole(ctx, session.RoleStudent); err != nil {
			return err
		}
		return cli.scanView(ctx, *scanToken)
	case "lesson":
		if err := lessonCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *lessonID == 0 {
			lessonCmd.Usage()
			return errHelp
		}
		if err := cli.requireRole(ctx, session.RoleTeacher, session.RoleAdmin); err != nil {
			return err
		}
		return cli.lessonDetailView(ctx, *lessonID)
	case "profile":
		if err := cli.requireAuth(ctx); err != nil {
			return err
		}
		return cli.profileView(ctx)
	case "qr":
		if err := qrCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *qrID == 0 {
			qrCmd.Usage()
			return errHelp
		}
		if err := cli.requireRole(ctx, session.RoleAdmin); err != nil {
			return err
		}
		return cli.qrView(ctx, *qrID, *qrOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

// checkSession resolves the auth state once per process.
func (cli *commandLine) checkSession(ctx context.Context) error {
	if cli.sessSvc.State() == session.StateLoading {
		return cli.sessSvc.CheckSession(ctx)
	}
	return nil
}

func (cli *commandLine) requireAuth(ctx context.Context) error {
	if err := cli.checkSession(ctx); err != nil {
		return err
	}
	if cli.sessSvc.State() != session.StateAuthenticated {
		return errNotSignedIn
	}
	return nil
}

func (cli *commandLine) requireRole(ctx context.Context, roles ...session.Role) error {
	if err := cli.requireAuth(ctx); err != nil {
		return err
	}
	role := cli.sessSvc.Role()
	for _, r := range roles {
		if role == r {
			return nil
		}
	}
	return errNotAllowed
}

func (cli *commandLine) readLine() (string, error) {
	line, err := cli.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
