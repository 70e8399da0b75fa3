// Copyright 2024 LiveKit, Inc.
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
	"regexp"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var pythonVersionRegex = regexp.MustCompile(`(?i)python\s+(\d+\.\d+(?:\.\d+)?)([a-z]+\d*)?`)

// Python is an interpreter resolved from PATH.
type Python struct {
	// Command is the name as the user would type it, used in hints.
	Command string
	Path    string
}

func DefaultPythonCandidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"python", "py"}
	}
	return []string{"python3", "python"}
}

// FindPython returns the first candidate that resolves through lookPath.
func FindPython(lookPath LookPathFunc, candidates []string) (*Python, error) {
	for _, c := range candidates {
		if p, err := lookPath(c); err == nil {
			return &Python{Command: c, Path: p}, nil
		}
	}
	return nil, ErrPythonNotFound
}

func (p *Python) VersionCommand(dir string) Command {
	return Command{Path: p.Path, Args: []string{"--version"}, Dir: dir, Quiet: true}
}

func (p *Python) PipUpgradeCommand(dir string) Command {
	return Command{
		Path:  p.Path,
		Args:  []string{"-m", "pip", "install", "--upgrade", "pip"},
		Dir:   dir,
		Quiet: true,
	}
}

func (p *Python) PipInstallCommand(dir, requirements string) Command {
	return Command{
		Path:  p.Path,
		Args:  []string{"-m", "pip", "install", "-r", requirements},
		Dir:   dir,
		Quiet: true,
	}
}

func (p *Python) ScriptCommand(dir, script string, args ...string) Command {
	return Command{
		Path: p.Path,
		Args: append([]string{script}, args...),
		Dir:  dir,
	}
}

// Hint renders cmd as the user would retype it, with the bare interpreter name.
func (p *Python) Hint(cmd Command) string {
	return strings.Join(append([]string{p.Command}, cmd.Args...), " ")
}

// ProbeVersion asks the interpreter for its version.
func (p *Python) ProbeVersion(ctx context.Context, exe Executor, dir string) (*semver.Version, error) {
	out, err := exe.Output(ctx, p.VersionCommand(dir))
	if err != nil {
		return nil, err
	}
	return ParsePythonVersion(string(out))
}

// ParsePythonVersion extracts the version from `python --version` output, e.g.
// "Python 3.11.4" or "Python 3.13.0rc1".
func ParsePythonVersion(out string) (*semver.Version, error) {
	m := pythonVersionRegex.FindStringSubmatch(out)
	if m == nil {
		return nil, fmt.Errorf("unrecognized python version output %q", strings.TrimSpace(out))
	}
	version := m[1]
	if m[2] != "" {
		version += "-" + m[2]
	}
	return semver.NewVersion(version)
}

// SatisfiesMinimum compares major.minor.patch only, so a release candidate of
// the minimum version is accepted.
func SatisfiesMinimum(v, minVersion *semver.Version) bool {
	core, err := v.SetPrerelease("")
	if err != nil {
		return v.Compare(minVersion) >= 0
	}
	return core.Compare(minVersion) >= 0
}
