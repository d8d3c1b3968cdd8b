package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/nexuspost/internal/buildinfo"
	"github.com/dmitrijs2005/nexuspost/internal/client/cli"
	"github.com/dmitrijs2005/nexuspost/internal/client/config"
	"github.com/dmitrijs2005/nexuspost/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// after the first signal default handling is restored, so a second
	// Ctrl-C terminates the process
	go func() {
		<-ctx.Done()
		stop()
	}()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
