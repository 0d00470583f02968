package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/buildinfo"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/cli"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		stop()
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
