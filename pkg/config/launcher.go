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

// Package config loads the optional launcher.toml that sits next to the
// application and overrides the paths and interpreter the launcher uses.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/livekit/protocol/logger"
)

const (
	LauncherTOMLFile = "launcher.toml"

	DefaultRequirements     = "requirements.txt"
	DefaultEnvFile          = ".env"
	DefaultEnvExampleFile   = ".env.example"
	DefaultCoreFile         = "core/consciousness.py"
	DefaultEntrypoint       = "start.py"
	DefaultMinPythonVersion = "3.8"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration file")
	ErrInvalidMinVersion = fmt.Errorf("min_python_version must be a version like 3.8: %w", ErrInvalidConfig)
	ErrAbsolutePath      = fmt.Errorf("paths must be relative to the application directory: %w", ErrInvalidConfig)
)

type LauncherTOML struct {
	App    *LauncherTOMLAppConfig    `toml:"app"`
	Python *LauncherTOMLPythonConfig `toml:"python"`
}

type LauncherTOMLAppConfig struct {
	Requirements   string   `toml:"requirements"`
	EnvFile        string   `toml:"env_file"`
	EnvExampleFile string   `toml:"env_example_file"`
	CoreFile       string   `toml:"core_file"`
	Entrypoint     string   `toml:"entrypoint"`
	Args           []string `toml:"args"`
}

type LauncherTOMLPythonConfig struct {
	// Interpreter pins a single command; when empty the platform
	// candidates are tried in order.
	Interpreter string `toml:"interpreter"`
	MinVersion  string `toml:"min_python_version"`
}

func NewLauncherTOML() *LauncherTOML {
	return &LauncherTOML{
		App: &LauncherTOMLAppConfig{
			Requirements:   DefaultRequirements,
			EnvFile:        DefaultEnvFile,
			EnvExampleFile: DefaultEnvExampleFile,
			CoreFile:       DefaultCoreFile,
			Entrypoint:     DefaultEntrypoint,
		},
		Python: &LauncherTOMLPythonConfig{
			MinVersion: DefaultMinPythonVersion,
		},
	}
}

// withDefaults fills every unset field from NewLauncherTOML.
func (c *LauncherTOML) withDefaults() *LauncherTOML {
	d := NewLauncherTOML()
	if c.App == nil {
		c.App = d.App
	} else {
		setDefault(&c.App.Requirements, d.App.Requirements)
		setDefault(&c.App.EnvFile, d.App.EnvFile)
		setDefault(&c.App.EnvExampleFile, d.App.EnvExampleFile)
		setDefault(&c.App.CoreFile, d.App.CoreFile)
		setDefault(&c.App.Entrypoint, d.App.Entrypoint)
	}
	if c.Python == nil {
		c.Python = d.Python
	} else {
		setDefault(&c.Python.MinVersion, d.Python.MinVersion)
	}
	return c
}

func (c *LauncherTOML) Validate() error {
	for _, p := range []string{
		c.App.Requirements,
		c.App.EnvFile,
		c.App.EnvExampleFile,
		c.App.CoreFile,
		c.App.Entrypoint,
	} {
		if filepath.IsAbs(p) {
			return fmt.Errorf("%s: %w", p, ErrAbsolutePath)
		}
	}
	if _, err := semver.NewVersion(c.Python.MinVersion); err != nil {
		return ErrInvalidMinVersion
	}
	return nil
}

// MinPythonVersion returns the parsed minimum; Validate must have passed.
func (c *LauncherTOML) MinPythonVersion() *semver.Version {
	return semver.MustParse(c.Python.MinVersion)
}

// LoadTOMLFile reads dir/tomlFileName. A missing file is not an error: the
// defaults are returned with configExists set to false.
func LoadTOMLFile(dir string, tomlFileName string) (*LauncherTOML, bool, error) {
	logger.Debugw(fmt.Sprintf("loading %s file", tomlFileName))
	tomlFile := filepath.Join(dir, tomlFileName)

	if _, err := os.Stat(tomlFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewLauncherTOML(), false, nil
		}
		return nil, true, err
	}

	config := &LauncherTOML{}
	md, err := toml.DecodeFile(tomlFile, config)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnw("ignoring unknown keys in config", nil, "file", tomlFileName, "keys", undecoded)
	}

	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, true, err
	}
	return config, true, nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
