package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/ashgrove/gogbc/backend"
	"github.com/ashgrove/gogbc/backend/headless"
	"github.com/ashgrove/gogbc/backend/sdl2"
	"github.com/ashgrove/gogbc/backend/terminal"
	"github.com/ashgrove/gogbc/gbcore"
)

func main() {
	app := cli.NewApp()
	app.Name = "gogbc"
	app.Usage = "gogbc [options] <ROM file>"
	app.Description = "A DMG Game Boy emulator"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "run without a terminal display",
		},
		cli.BoolFlag{
			Name:  "sdl2",
			Usage: "use the SDL2 window backend instead of the terminal (requires building with -tags sdl2)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run in headless mode (0 = unbounded)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "show CPU registers alongside the screen",
		},
		cli.BoolFlag{
			Name:  "grayscale",
			Usage: "use plain grayscale instead of the default green palette",
		},
		cli.StringFlag{
			Name:  "save",
			Usage: "path to load/save battery RAM from/to",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gogbc", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	var opts []gbcore.Option
	if c.Bool("grayscale") {
		opts = append(opts, gbcore.WithGrayscalePalette())
	}

	core, err := gbcore.BuildFromROM(rom, opts...)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if savePath := c.String("save"); savePath != "" {
		if data, err := os.ReadFile(savePath); err == nil {
			core.LoadRAM(data)
			slog.Info("loaded save RAM", "path", savePath)
		}
		defer func() {
			if ram := core.SaveRAM(); ram != nil {
				if err := os.WriteFile(savePath, ram, 0644); err != nil {
					slog.Error("saving RAM", "path", savePath, "error", err)
				}
			}
		}()
	}

	var be backend.Backend
	switch {
	case c.Bool("headless"):
		be = headless.New(c.Int("frames"))
	case c.Bool("sdl2"):
		be = sdl2.New()
	default:
		be = terminal.New()
	}

	cfg := backend.Config{Title: "gogbc", ShowDebug: c.Bool("debug"), Core: core}
	if err := be.Init(cfg); err != nil {
		return err
	}
	defer be.Cleanup()

	for {
		if _, err := core.RunToVBlank(); err != nil {
			return fmt.Errorf("emulation fault: %w", err)
		}

		pressed, quit, err := be.Update(core.Framebuffer())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		core.SetButtons(pressed)
	}
}
