package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// qrView shows a lesson's QR code so it can be projected for the class.
// Without -out the lesson's QR payload is re-encoded and drawn right in the
// terminal; with -out the server-rendered PNG is fetched and saved instead.
func (cli *commandLine) qrView(ctx context.Context, id int, outPath string) error {
	if outPath != "" {
		img, err := cli.schedSvc.QRImage(ctx, id)
		if err != nil {
			return err
		}
		if err = os.WriteFile(outPath, img, 0o644); err != nil {
			return errors.Wrap(err, "saving QR image")
		}
		fmt.Fprintf(cli.out, "Saved QR image to %s.\n", outPath)
		return nil
	}

	lessons, err := cli.schedSvc.List(ctx)
	if err != nil {
		return err
	}
	for _, l := range lessons {
		if l.ID != id {
			continue
		}
		if l.QRToken == "" {
			return errors.New("the server did not share this lesson's QR payload")
		}
		qr, err := qrcode.New(l.QRToken, qrcode.Medium)
		if err != nil {
			return errors.Wrap(err, "encoding QR payload")
		}
		fmt.Fprint(cli.out, qr.ToSmallString(false))
		return nil
	}
	return errors.Errorf("lesson %d is not on your schedule", id)
}
