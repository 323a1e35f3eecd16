package commands

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"ptz-panel/internal/controller"
	"ptz-panel/internal/presets"
	"ptz-panel/internal/types"
)

// GetConfigureCommand отправляет конфигурацию камеры на бэкенд без браузера
func GetConfigureCommand() *cli.Command {
	return &cli.Command{
		Name:  "configure",
		Usage: "Send camera credentials to the backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "camera-ip", Required: true, Usage: "Camera IP address"},
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Camera username"},
			&cli.StringFlag{Name: "password", Required: true, Usage: "Camera password", EnvVars: []string{"PTZ_CAMERA_PASSWORD"}},
			&cli.StringFlag{Name: "camera-port", Value: controller.DefaultPort, Usage: "Camera RTSP port"},
		},
		Action: func(c *cli.Context) error {
			ctx, err := NewCommandContext(c)
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			client := ctx.Backend()
			screen := controller.NewConfigScreen(client, func(cfg types.CameraConfig) error {
				fmt.Fprintf(c.App.Writer, "Camera %s configured on %s\n", cfg.CameraIP, client.Endpoints.BaseURL)
				return nil
			}, ctx.Logger, nil)

			err = screen.Submit(c.Context, types.CameraConfig{
				CameraIP: c.String("camera-ip"),
				Username: c.String("username"),
				Password: c.String("password"),
				Port:     c.String("camera-port"),
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("%s (%v)", controller.ConfigFailedMessage, err), 1)
			}

			health, err := client.Health(c.Context)
			if err != nil {
				ctx.Logger.Warn("Backend health check failed", zap.Error(err))
				return nil
			}
			fmt.Fprintf(c.App.Writer, "Backend status: %v\n", health["status"])
			return nil
		},
	}
}

// GetPresetCommand перемещает камеру в пресет по номеру зоны или клавише
func GetPresetCommand() *cli.Command {
	return &cli.Command{
		Name:      "preset",
		Usage:     "Move the camera to a preset zone",
		ArgsUsage: "<zone 1-9 | key q,w,e,a,s,d,z,x,c>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one zone or key is required", 2)
			}

			zoneID, err := parseZone(c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			ctx, err := NewCommandContext(c)
			if err != nil {
				return err
			}
			defer ctx.Logger.Sync()

			screen := controller.NewControlScreen(ctx.Backend(), nil, ctx.Logger, nil)
			if err := screen.Command(c.Context, zoneID, controller.SourceCLI); err != nil {
				return cli.Exit(fmt.Sprintf("preset %d failed: %v", zoneID, err), 1)
			}

			fmt.Fprintf(c.App.Writer, "Moved to preset %d\n", zoneID)
			return nil
		},
	}
}

// GetZonesCommand выводит сетку зон и назначенные клавиши
func GetZonesCommand() *cli.Command {
	return &cli.Command{
		Name:  "zones",
		Usage: "Print the preset grid and key mapping",
		Action: func(c *cli.Context) error {
			zones := presets.Zones()
			for row := 0; row < 3; row++ {
				for col := 0; col < 3; col++ {
					z := zones[row*3+col]
					fmt.Fprintf(c.App.Writer, "[%d %s] ", z.ID, z.Key)
				}
				fmt.Fprintln(c.App.Writer)
			}
			return nil
		},
	}
}

// parseZone принимает номер зоны или назначенную клавишу
func parseZone(arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if !presets.Valid(id) {
			return 0, fmt.Errorf("%w: %d", controller.ErrUnknownZone, id)
		}
		return id, nil
	}
	if id, ok := presets.Lookup(arg); ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", controller.ErrUnknownZone, arg)
}
