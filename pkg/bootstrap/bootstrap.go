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

// This package prepares a Python application directory for its first run and
// hands control to it: it checks for an interpreter, seeds the environment file
// from its template, installs the declared requirements and starts the main
// program. Every precondition is checked in a fixed order and the first unmet
// one ends the run.
package bootstrap

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Values in the template that still start with this prefix were never filled in.
const EnvPlaceholderPrefix = "你的_"

var (
	// Keys the application refuses to start without.
	RequiredEnvKeys = []string{
		"TELEGRAM_BOT_TOKEN",
		"DEEPSEEK_API_KEY",
		"ZHIPU_API_KEY",
	}

	// Application config files, relative to the application directory.
	AppConfigFiles = []string{
		filepath.Join("config", "character_profile.yaml"),
		filepath.Join("config", "emotion_config.yaml"),
		filepath.Join("config", "memory_rules.yaml"),
		filepath.Join("config", "system_config.yaml"),
	}

	// Directories the application reads from or writes to. The application
	// creates data/ on its first start.
	AppDirs = []string{"core", "config", "data"}

	ErrEnvCreated     = errors.New("environment file created from template")
	ErrPythonNotFound = errors.New("python interpreter not found in PATH")
)

// Resolves a command name through PATH, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// UnsetEnvKeys returns the keys from `keys` that are absent, empty or still
// hold a template placeholder in the dotenv file at path.
func UnsetEnvKeys(path string, keys []string) ([]string, error) {
	envMap, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}

	var unset []string
	for _, key := range keys {
		if !isEnvValueSet(envMap[key]) {
			unset = append(unset, key)
		}
	}
	return unset, nil
}

func isEnvValueSet(value string) bool {
	return strings.TrimSpace(value) != "" && !strings.HasPrefix(value, EnvPlaceholderPrefix)
}
