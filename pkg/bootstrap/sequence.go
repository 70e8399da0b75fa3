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

package bootstrap

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/companion-launcher/pkg/config"
	"github.com/livekit/companion-launcher/pkg/util"
)

type Step int

const (
	StepInterpreter Step = iota + 1
	StepConfig
	StepManifest
	StepEnvFile
	StepUpgradePip
	StepInstall
	StepCoreFile
	StepLaunch
)

func (s Step) String() string {
	switch s {
	case StepInterpreter:
		return "interpreter"
	case StepConfig:
		return "config"
	case StepManifest:
		return "manifest"
	case StepEnvFile:
		return "env"
	case StepUpgradePip:
		return "upgrade-pip"
	case StepInstall:
		return "install"
	case StepCoreFile:
		return "core-file"
	case StepLaunch:
		return "launch"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// StepError ends a run. Msg is meant for the user; Hint, when set, tells
// them what to do about it.
type StepError struct {
	Step Step
	Msg  string
	Hint string
	Err  error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Reporter receives the user-facing progress of a run. Failures are not
// reported; they are returned from Sequencer.Run.
type Reporter interface {
	Progress(step Step, msg string)
	Success(msg string)
	Warn(msg string)
}

// AwaitFunc wraps a blocking action, e.g. with a spinner. It has the
// signature of util.Await.
type AwaitFunc func(title string, ctx context.Context, action func(ctx context.Context) error) error

// Sequencer runs the launch steps in order and stops at the first failure.
type Sequencer struct {
	Dir        string
	Config     *config.LauncherTOML
	Candidates []string
	LookPath   LookPathFunc
	Exec       Executor
	Reporter   Reporter
	Await      AwaitFunc
	// ConfigErr is a failure to load the launcher config, reported once the
	// interpreter check has passed. Config must still hold usable defaults.
	ConfigErr error
}

func NewSequencer(dir string, cfg *config.LauncherTOML, exe Executor, reporter Reporter) *Sequencer {
	return &Sequencer{
		Dir:        dir,
		Config:     cfg,
		Candidates: InterpreterCandidates(cfg),
		LookPath:   exec.LookPath,
		Exec:       exe,
		Reporter:   reporter,
		Await:      runNow,
	}
}

// InterpreterCandidates returns the pinned interpreter if the config has
// one, otherwise the platform defaults.
func InterpreterCandidates(cfg *config.LauncherTOML) []string {
	if cfg.Python != nil && cfg.Python.Interpreter != "" {
		return []string{cfg.Python.Interpreter}
	}
	return DefaultPythonCandidates()
}

func runNow(_ string, ctx context.Context, action func(ctx context.Context) error) error {
	return action(ctx)
}

// Run executes every step. A nil error means the application ran and exited
// cleanly. A *StepError with Step == StepLaunch wraps the application's own
// failure; any other *StepError is an unmet precondition.
func (s *Sequencer) Run(ctx context.Context) error {
	app := s.Config.App

	py, err := FindPython(s.LookPath, s.Candidates)
	if err != nil {
		return &StepError{
			Step: StepInterpreter,
			Msg:  "Python was not found",
			Hint: fmt.Sprintf("install Python %s or newer and make sure one of %v is on your PATH", s.Config.Python.MinVersion, s.Candidates),
			Err:  err,
		}
	}
	s.Reporter.Progress(StepInterpreter, fmt.Sprintf("Using %s", py.Path))

	if s.ConfigErr != nil {
		return &StepError{
			Step: StepConfig,
			Msg:  "The launcher config could not be loaded",
			Hint: "fix or remove the launcher TOML in the application directory",
			Err:  s.ConfigErr,
		}
	}
	s.warnIfOutdated(ctx, py)

	if !util.FileExists(s.Dir, app.Requirements) {
		return &StepError{
			Step: StepManifest,
			Msg:  fmt.Sprintf("%s not found", app.Requirements),
			Hint: "run the launcher from the application directory",
		}
	}
	s.logRequirements()

	if err := s.ensureEnvFile(); err != nil {
		return err
	}

	upgrade := py.PipUpgradeCommand(s.Dir)
	if err := s.Await("Upgrading pip...", ctx, func(ctx context.Context) error {
		return s.Exec.Run(ctx, upgrade)
	}); err != nil {
		logger.Debugw("pip upgrade failed, continuing", "error", err)
	}

	install := py.PipInstallCommand(s.Dir, app.Requirements)
	if err := s.Await("Installing dependencies...", ctx, func(ctx context.Context) error {
		return s.Exec.Run(ctx, install)
	}); err != nil {
		return &StepError{
			Step: StepInstall,
			Msg:  "Failed to install dependencies",
			Hint: "try installing them manually: " + py.Hint(install),
			Err:  err,
		}
	}
	s.Reporter.Success("Dependencies installed")

	if !util.FileExists(s.Dir, app.CoreFile) {
		return &StepError{
			Step: StepCoreFile,
			Msg:  fmt.Sprintf("%s not found", util.ToUnixPath(app.CoreFile)),
			Hint: "the application files look incomplete, download them again",
		}
	}

	s.Reporter.Progress(StepLaunch, "Starting application...")
	launch := py.ScriptCommand(s.Dir, app.Entrypoint, app.Args...)
	logger.Debugw("starting application", "command", launch.String(), "dir", s.Dir)
	if err := s.Exec.Run(ctx, launch); err != nil {
		return &StepError{
			Step: StepLaunch,
			Msg:  "The application exited with an error",
			Err:  err,
		}
	}
	return nil
}

// ensureEnvFile halts the run when the environment file has to be created:
// the fresh copy still holds template placeholders, so the user must fill in
// their secrets before the application can start.
func (s *Sequencer) ensureEnvFile() error {
	app := s.Config.App
	if util.FileExists(s.Dir, app.EnvFile) {
		return nil
	}

	if !util.FileExists(s.Dir, app.EnvExampleFile) {
		return &StepError{
			Step: StepEnvFile,
			Msg:  fmt.Sprintf("neither %s nor %s was found", app.EnvFile, app.EnvExampleFile),
			Hint: "run the launcher from the application directory",
		}
	}

	src := filepath.Join(s.Dir, app.EnvExampleFile)
	dest := filepath.Join(s.Dir, app.EnvFile)
	if err := util.CopyFile(src, dest); err != nil {
		return &StepError{
			Step: StepEnvFile,
			Msg:  fmt.Sprintf("could not create %s", app.EnvFile),
			Err:  err,
		}
	}
	s.Reporter.Success(fmt.Sprintf("Created %s from %s", app.EnvFile, app.EnvExampleFile))

	return &StepError{
		Step: StepEnvFile,
		Msg:  fmt.Sprintf("Fill in your API keys in %s, then run the launcher again", app.EnvFile),
		Hint: "open " + dest + " in a text editor",
		Err:  ErrEnvCreated,
	}
}

func (s *Sequencer) warnIfOutdated(ctx context.Context, py *Python) {
	v, err := py.ProbeVersion(ctx, s.Exec, s.Dir)
	if err != nil {
		logger.Debugw("could not determine python version", "error", err)
		return
	}
	minVersion := s.Config.MinPythonVersion()
	logger.Debugw("found python", "version", v.String(), "min", minVersion.String())
	if !SatisfiesMinimum(v, minVersion) {
		s.Reporter.Warn(fmt.Sprintf("Python %s is older than the required %s, the application may fail to start", v, minVersion))
	}
}

func (s *Sequencer) logRequirements() {
	reqs, err := ReadRequirements(filepath.Join(s.Dir, s.Config.App.Requirements))
	if err != nil {
		logger.Debugw("could not parse requirements", "error", err)
		return
	}
	pkgs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		pkgs = append(pkgs, r.String())
	}
	logger.Debugw("requirements", "count", len(reqs), "packages", pkgs)
}
