package main

import (
	"context"
	"fmt"
)

// scanView marks attendance from a decoded QR payload. Hardware scanners type
// the payload followed by a newline, so reading one line is the scan. Only one
// mark can be in flight; the lock releases once the server has answered, so a
// rejected scan can be retried right away.
func (cli *commandLine) scanView(ctx context.Context, token string) error {
	if cli.scanBusy {
		return nil
	}

	if token == "" {
		fmt.Fprintln(cli.out, "\nPoint your scanner at the lesson's QR code.")
		fmt.Fprint(cli.out, "Scan the code (or paste it) and press enter, empty to cancel: ")
		line, err := cli.readLine()
		if err != nil {
			return err
		}
		if line == "" {
			fmt.Fprintln(cli.out, "Scan cancelled.")
			return nil
		}
		token = line
	}

	cli.scanBusy = true
	defer func() { cli.scanBusy = false }()

	success, err := cli.schedSvc.Mark(ctx, token, cli.deviceID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, success)
	return cli.scheduleView(ctx)
}
