package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/hudhura/core"
	"github.com/trezcool/hudhura/core/device"
	"github.com/trezcool/hudhura/core/schedule"
	"github.com/trezcool/hudhura/core/session"
	apisvc "github.com/trezcool/hudhura/services/api"
	logsvc "github.com/trezcool/hudhura/services/logger"
	keyringstore "github.com/trezcool/hudhura/storage/keyring"
	filestore "github.com/trezcool/hudhura/storage/secretfile"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "HUDHURA : ", log.LstdFlags)
	var logger core.Logger
	if !conf.Debug && conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up storage
	var (
		store session.TokenStore
		err   error
	)
	switch conf.TokenStore {
	case "file":
		store, err = filestore.NewStore(conf.DataDir, conf.AppName)
	default:
		store = keyringstore.NewStore(conf.AppName)
	}
	errAndDie(logger, err)

	// set up services
	client, err := apisvc.NewClient(conf, store)
	errAndDie(logger, err)
	sessSvc := session.NewService(store, client, logger)
	schedSvc := schedule.NewService(client)

	deviceID, err := device.ID(conf.DataDir)
	if err != nil {
		logger.Warn("resolving device id", err)
	}

	// start CLI
	cli := &commandLine{
		conf:     conf,
		log:      logger,
		sessSvc:  sessSvc,
		schedSvc: schedSvc,
		deviceID: deviceID,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
	// in-flight requests die with the process on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}
}

func errAndDie(logger core.Logger, err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
