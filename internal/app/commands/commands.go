package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// GetCommands возвращает все доступные команды
func GetCommands() []*cli.Command {
	return []*cli.Command{
		GetServerCommand(),
		GetConfigureCommand(),
		GetPresetCommand(),
		GetZonesCommand(),
		GetVersionCommand(),
	}
}

// GlobalFlags флаги, общие для всех команд
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "./config/config.yaml",
			Usage:   "Path to the configuration file",
			EnvVars: []string{"PTZ_PANEL_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug mode",
		},
		&cli.StringFlag{
			Name:    "backend-host",
			Usage:   "Camera backend host",
			EnvVars: []string{"PTZ_BACKEND_HOST"},
		},
		&cli.IntFlag{
			Name:    "backend-port",
			Usage:   "Camera backend port",
			EnvVars: []string{"PTZ_BACKEND_PORT"},
		},
		&cli.DurationFlag{
			Name:  "backend-timeout",
			Usage: "Backend request timeout (0 keeps the HTTP client default)",
		},
	}
}

// GetVersionCommand выводит версию сборки
func GetVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "PTZ Panel\n")
			fmt.Fprintf(c.App.Writer, "Version:    %s\n", c.App.Version)
			fmt.Fprintf(c.App.Writer, "Commit:     %v\n", c.App.Metadata["commit"])
			fmt.Fprintf(c.App.Writer, "Build Date: %v\n", c.App.Metadata["build_date"])
			return nil
		},
	}
}
