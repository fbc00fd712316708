package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/gettickets/gettickets/internal/commands"
)

func main() {
	app := &cli.App{
		Name:     "gettickets",
		Usage:    "A utility for scraping search results for movies playing in theaters, their showtimes, and ticket links",
		Commands: commands.Movies,
	}
	if err := app.Run(os.Args); err != nil {
		zap.L().Fatal("Fatal error", zap.Error(err))
	}
}
