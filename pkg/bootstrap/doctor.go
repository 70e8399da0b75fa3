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
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/livekit/companion-launcher/pkg/config"
	"github.com/livekit/companion-launcher/pkg/util"
)

type CheckStatus int

const (
	CheckOK CheckStatus = iota
	CheckWarn
	CheckFail
)

type CheckResult struct {
	Name   string
	Status CheckStatus
	Detail string
}

// Doctor inspects an application directory without changing anything in it.
type Doctor struct {
	Dir        string
	Config     *config.LauncherTOML
	Candidates []string
	LookPath   LookPathFunc
	Exec       Executor
}

func NewDoctor(dir string, cfg *config.LauncherTOML, exe Executor) *Doctor {
	return &Doctor{
		Dir:        dir,
		Config:     cfg,
		Candidates: InterpreterCandidates(cfg),
		LookPath:   exec.LookPath,
		Exec:       exe,
	}
}

func (d *Doctor) Run(ctx context.Context) []CheckResult {
	results := []CheckResult{d.checkPython(ctx), d.checkRequirements(), d.checkEnvFile()}
	results = append(results, d.checkAppDirs()...)
	results = append(results, d.checkAppConfigs()...)
	return append(results, d.checkCoreFile())
}

// Failed reports whether any result is a failure; warnings do not count.
func Failed(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == CheckFail {
			return true
		}
	}
	return false
}

func (d *Doctor) checkPython(ctx context.Context) CheckResult {
	res := CheckResult{Name: "python"}
	py, err := FindPython(d.LookPath, d.Candidates)
	if err != nil {
		res.Status = CheckFail
		res.Detail = fmt.Sprintf("none of %v found in PATH", d.Candidates)
		return res
	}

	v, err := py.ProbeVersion(ctx, d.Exec, d.Dir)
	if err != nil {
		res.Status = CheckWarn
		res.Detail = fmt.Sprintf("%s (version unknown: %v)", py.Path, err)
		return res
	}

	minVersion := d.Config.MinPythonVersion()
	if !SatisfiesMinimum(v, minVersion) {
		res.Status = CheckFail
		res.Detail = fmt.Sprintf("%s is %s, need %s or newer", py.Path, v, minVersion)
		return res
	}
	res.Detail = fmt.Sprintf("%s (%s)", py.Path, v)
	return res
}

func (d *Doctor) checkRequirements() CheckResult {
	name := d.Config.App.Requirements
	res := CheckResult{Name: name}
	reqs, err := ReadRequirements(filepath.Join(d.Dir, name))
	if err != nil {
		res.Status = CheckFail
		res.Detail = describeReadError(err)
		return res
	}
	if len(reqs) == 0 {
		res.Status = CheckWarn
		res.Detail = "no packages listed"
		return res
	}
	res.Detail = fmt.Sprintf("%d packages", len(reqs))
	return res
}

func (d *Doctor) checkEnvFile() CheckResult {
	app := d.Config.App
	res := CheckResult{Name: app.EnvFile}
	if !util.FileExists(d.Dir, app.EnvFile) {
		res.Status = CheckFail
		if util.FileExists(d.Dir, app.EnvExampleFile) {
			res.Detail = fmt.Sprintf("missing, the launcher will create it from %s", app.EnvExampleFile)
		} else {
			res.Detail = fmt.Sprintf("missing, and so is %s", app.EnvExampleFile)
		}
		return res
	}

	unset, err := UnsetEnvKeys(filepath.Join(d.Dir, app.EnvFile), RequiredEnvKeys)
	if err != nil {
		res.Status = CheckFail
		res.Detail = err.Error()
		return res
	}
	if len(unset) > 0 {
		res.Status = CheckFail
		res.Detail = "not set: " + strings.Join(unset, ", ")
		return res
	}
	res.Detail = fmt.Sprintf("%d required keys set", len(RequiredEnvKeys))
	return res
}

// A missing directory only warns: the files inside it are checked on their
// own, and data/ is recreated by the application.
func (d *Doctor) checkAppDirs() []CheckResult {
	results := make([]CheckResult, 0, len(AppDirs))
	for _, name := range AppDirs {
		res := CheckResult{Name: name + "/"}
		info, err := os.Stat(filepath.Join(d.Dir, name))
		switch {
		case os.IsNotExist(err):
			res.Status = CheckWarn
			res.Detail = "missing"
		case err != nil:
			res.Status = CheckWarn
			res.Detail = err.Error()
		case !info.IsDir():
			res.Status = CheckWarn
			res.Detail = "not a directory"
		}
		results = append(results, res)
	}
	return results
}

// Missing app config files only warn, the application falls back to empty
// settings for them.
func (d *Doctor) checkAppConfigs() []CheckResult {
	results := make([]CheckResult, 0, len(AppConfigFiles))
	for _, name := range AppConfigFiles {
		res := CheckResult{Name: util.ToUnixPath(name)}
		data, err := os.ReadFile(filepath.Join(d.Dir, name))
		switch {
		case os.IsNotExist(err):
			res.Status = CheckWarn
			res.Detail = "missing"
		case err != nil:
			res.Status = CheckFail
			res.Detail = err.Error()
		default:
			var doc map[string]any
			if err := yaml.Unmarshal(data, &doc); err != nil {
				res.Status = CheckFail
				res.Detail = err.Error()
			} else {
				res.Detail = fmt.Sprintf("%d top-level keys", len(doc))
			}
		}
		results = append(results, res)
	}
	return results
}

func (d *Doctor) checkCoreFile() CheckResult {
	name := d.Config.App.CoreFile
	res := CheckResult{Name: util.ToUnixPath(name)}
	if !util.FileExists(d.Dir, name) {
		res.Status = CheckFail
		res.Detail = "missing"
	}
	return res
}

func describeReadError(err error) string {
	if os.IsNotExist(err) {
		return "missing"
	}
	return err.Error()
}
