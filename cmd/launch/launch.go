// Copyright 2026 LiveKit, Inc.
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
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/companion-launcher/pkg/bootstrap"
	"github.com/livekit/companion-launcher/pkg/util"
)

const pausePrompt = "Press Enter to close this window"

func launchApplication(ctx context.Context, cmd *cli.Command) error {
	ui := newConsole(os.Stdout, os.Stderr)
	ui.Banner()

	code := ui.Result(runSequence(ctx, cmd, ui))

	return finish(ctx, code, cmd.Bool("no-pause"), func(ctx context.Context) error {
		return util.WaitForAck(ctx, os.Stdin, os.Stdout, pausePrompt)
	})
}

// finish holds the window open until the user acknowledges the outcome, then
// turns code into the process exit status. The pause is skipped with
// --no-pause and after an interrupt.
func finish(ctx context.Context, code int, noPause bool, pause func(ctx context.Context) error) error {
	if !noPause && ctx.Err() == nil {
		if err := pause(ctx); err != nil {
			logger.Debugw("pause interrupted", "error", err)
		}
	}

	if code != 0 {
		// the console already explained the failure
		return cli.Exit(fmt.Sprintf("exit status %d", code), code)
	}
	return nil
}

func runSequence(ctx context.Context, cmd *cli.Command, reporter bootstrap.Reporter) error {
	dir, cfg, cfgErr := loadLauncherConfig(cmd)

	seq := bootstrap.NewSequencer(dir, cfg, bootstrap.NewProcessExecutor(), reporter)
	seq.Await = util.Await
	seq.ConfigErr = cfgErr
	return seq.Run(ctx)
}

// Result prints the outcome of a run and returns the process exit code:
// the application's own code when it ran, 1 for every unmet precondition.
func (c *console) Result(err error) int {
	if err == nil {
		c.Success("Application exited")
		return 0
	}

	var stepErr *bootstrap.StepError
	if !errors.As(err, &stepErr) {
		c.Error(err.Error(), "")
		return 1
	}

	logger.Debugw("launch halted", "step", stepErr.Step.String(), "error", err)
	if stepErr.Step == bootstrap.StepLaunch {
		c.Error(stepErr.Msg, "")
		return bootstrap.ExitCode(err)
	}

	c.Error(stepErr.Msg, stepErr.Hint)
	if stepErr.Err != nil && !errors.Is(err, bootstrap.ErrEnvCreated) {
		c.Detail(stepErr.Err.Error())
	}
	return 1
}
