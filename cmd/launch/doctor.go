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
	"os"

	"github.com/urfave/cli/v3"

	"github.com/livekit/companion-launcher/pkg/bootstrap"
)

var (
	DoctorCommands = []*cli.Command{
		{
			Name:   "doctor",
			Usage:  "Check the application directory without changing anything",
			Action: runDoctor,
		},
	}

	errChecksFailed = errors.New("some checks failed")
)

func runDoctor(ctx context.Context, cmd *cli.Command) error {
	dir, cfg, err := loadLauncherConfig(cmd)
	if err != nil {
		return err
	}

	ui := newConsole(os.Stdout, os.Stderr)
	results := bootstrap.NewDoctor(dir, cfg, bootstrap.NewProcessExecutor()).Run(ctx)
	for _, r := range results {
		ui.Check(r)
	}

	if bootstrap.Failed(results) {
		return errChecksFailed
	}
	return nil
}
