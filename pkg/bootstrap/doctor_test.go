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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/companion-launcher/pkg/config"
)

func newTestDoctor(t *testing.T, files map[string]string) (*Doctor, *fakeExecutor) {
	t.Helper()
	dir := t.TempDir()
	writeAppFiles(t, dir, files)

	exe := newFakeExecutor()
	d := NewDoctor(dir, config.NewLauncherTOML(), exe)
	d.Candidates = []string{"python3", "python"}
	d.LookPath = lookPathWith("python3")
	return d, exe
}

func statusByName(results []CheckResult) map[string]CheckStatus {
	m := make(map[string]CheckStatus, len(results))
	for _, r := range results {
		m[r.Name] = r.Status
	}
	return m
}

func healthyApp() map[string]string {
	files := completeApp()
	files[".env"] = "TELEGRAM_BOT_TOKEN=123:abc\nDEEPSEEK_API_KEY=sk-1\nZHIPU_API_KEY=zp-1\n"
	files["config/character_profile.yaml"] = "name: 星黎\nage: 22\n"
	files["config/emotion_config.yaml"] = "baseline: calm\n"
	files["config/memory_rules.yaml"] = "retention_days: 30\n"
	files["config/system_config.yaml"] = "timezone: Asia/Shanghai\n"
	files["data/memory/.keep"] = ""
	return files
}

func TestDoctorHealthy(t *testing.T) {
	d, exe := newTestDoctor(t, healthyApp())

	results := d.Run(context.Background())
	require.False(t, Failed(results))
	for _, r := range results {
		require.Equal(t, CheckOK, r.Status, "%s: %s", r.Name, r.Detail)
	}
	require.Len(t, results, 4+len(AppDirs)+len(AppConfigFiles))
	// read-only: nothing was run through Run
	require.Empty(t, exe.calls)
}

func TestDoctorFindsProblems(t *testing.T) {
	files := healthyApp()
	files[".env"] = "TELEGRAM_BOT_TOKEN=你的_Telegram_Bot_Token\n"
	files["config/emotion_config.yaml"] = "baseline: [calm\n"
	delete(files, "config/memory_rules.yaml")
	delete(files, "core/consciousness.py")
	d, exe := newTestDoctor(t, files)
	exe.version = "Python 3.6.15"

	results := d.Run(context.Background())
	require.True(t, Failed(results))

	status := statusByName(results)
	require.Equal(t, CheckFail, status["python"])
	require.Equal(t, CheckOK, status["requirements.txt"])
	require.Equal(t, CheckFail, status[".env"])
	require.Equal(t, CheckOK, status["config/character_profile.yaml"])
	require.Equal(t, CheckFail, status["config/emotion_config.yaml"])
	require.Equal(t, CheckWarn, status["config/memory_rules.yaml"])
	require.Equal(t, CheckFail, status["core/consciousness.py"])
}

func TestDoctorDoesNotCreateEnv(t *testing.T) {
	files := healthyApp()
	delete(files, ".env")
	d, _ := newTestDoctor(t, files)

	results := d.Run(context.Background())
	require.Equal(t, CheckFail, statusByName(results)[".env"])
	require.NoFileExists(t, d.Dir+"/.env")
}

func TestDoctorMissingPython(t *testing.T) {
	d, _ := newTestDoctor(t, healthyApp())
	d.LookPath = lookPathWith()

	results := d.Run(context.Background())
	require.Equal(t, CheckFail, statusByName(results)["python"])
}

func TestDoctorWarnsOnEmptyRequirements(t *testing.T) {
	files := healthyApp()
	files["requirements.txt"] = "# pinned later\n"
	d, _ := newTestDoctor(t, files)

	results := d.Run(context.Background())
	require.Equal(t, CheckWarn, statusByName(results)["requirements.txt"])
	require.False(t, Failed(results))
}

func TestDoctorWarnsOnMissingDataDir(t *testing.T) {
	files := healthyApp()
	delete(files, "data/memory/.keep")
	d, _ := newTestDoctor(t, files)

	results := d.Run(context.Background())
	status := statusByName(results)
	require.Equal(t, CheckWarn, status["data/"])
	require.Equal(t, CheckOK, status["core/"])
	require.Equal(t, CheckOK, status["config/"])
	require.False(t, Failed(results))
}

func TestDoctorDataPathIsFile(t *testing.T) {
	files := healthyApp()
	delete(files, "data/memory/.keep")
	files["data"] = ""
	d, _ := newTestDoctor(t, files)

	require.Equal(t, CheckWarn, statusByName(d.Run(context.Background()))["data/"])
}
