// Copyright 2021-2026 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/livekit/protocol/logger"

	launcher "github.com/livekit/companion-launcher"
	"github.com/livekit/companion-launcher/pkg/config"
)

var (
	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Application `DIR` containing requirements.txt and start.py",
			Sources: cli.EnvVars("LAUNCH_DIR"),
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Launcher config `TOML` in the application directory",
			Value: config.LauncherTOMLFile,
		},
		&cli.StringFlag{
			Name:    "python",
			Usage:   "Python `COMMAND` to use instead of searching PATH",
			Sources: cli.EnvVars("LAUNCH_PYTHON"),
		},
		&cli.BoolFlag{
			Name:  "no-pause",
			Usage: "Exit without waiting for Enter",
		},
		&cli.BoolFlag{
			Name:     "verbose",
			Required: false,
		},
	}
)

func main() {
	app := &cli.Command{
		Name:            "launch",
		Usage:           "Prepare and start the companion app",
		Description:     "Checks for Python, creates .env from .env.example on first run, installs requirements.txt and starts the application. Run without arguments, or double-click.",
		Version:         launcher.Version,
		Suggest:         true,
		HideHelpCommand: true,
		Flags:           globalFlags,
		Action:          launchApplication,
		Before:          initLogger,
	}

	app.Commands = append(app.Commands, DoctorCommands...)

	// Register cleanup hook for SIGINT, SIGTERM, SIGQUIT
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logConfig := &logger.Config{
		Level: "info",
	}
	if cmd.Bool("verbose") {
		logConfig.Level = "debug"
	}
	logger.InitFromConfig(logConfig, "launch")

	return nil, nil
}

// loadLauncherConfig reads the optional launcher TOML and applies flag
// overrides on top of it. When the file cannot be loaded the returned config
// holds the defaults, so callers can keep going and report the error later.
func loadLauncherConfig(cmd *cli.Command) (string, *config.LauncherTOML, error) {
	dir := cmd.String("dir")
	tomlFile := cmd.String("config")

	cfg, exists, err := config.LoadTOMLFile(dir, tomlFile)
	if err != nil {
		cfg = config.NewLauncherTOML()
		err = fmt.Errorf("could not load %s: %w", tomlFile, err)
	} else if exists {
		logger.Debugw("using launcher config", "file", tomlFile, "dir", dir)
	}
	if py := cmd.String("python"); py != "" {
		cfg.Python.Interpreter = py
	}
	return dir, cfg, err
}
