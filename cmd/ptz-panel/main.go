package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"ptz-panel/internal/app/commands"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	application := &cli.App{
		Name:    "ptz-panel",
		Usage:   "Browser control panel for a PTZ camera backend",
		Version: Version,
		Metadata: map[string]interface{}{
			"commit":     Commit,
			"build_date": BuildDate,
		},
		Flags:    commands.GlobalFlags(),
		Commands: commands.GetCommands(),
		// Без команды запускаем сервер
		DefaultCommand: "server",
	}

	if err := application.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
