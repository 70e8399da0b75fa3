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

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("KEY=value\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "core"), 0755))
	if runtime.GOOS != "windows" {
		require.NoError(t, os.Symlink(filepath.Join(tmpDir, "missing"), filepath.Join(tmpDir, "dangling")))
	}

	tests := []struct {
		name     string
		dir      string
		filename string
		expected bool
	}{
		{name: "regular file", dir: tmpDir, filename: ".env", expected: true},
		{name: "directory", dir: tmpDir, filename: "core", expected: false},
		{name: "missing", dir: tmpDir, filename: "start.py", expected: false},
		{name: "broken symlink", dir: tmpDir, filename: "dangling", expected: false},
		{name: "empty dir", dir: "", filename: ".env", expected: false},
		{name: "empty filename", dir: tmpDir, filename: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FileExists(tt.dir, tt.filename))
		})
	}
}

func TestCopyFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, ".env.example")
	dest := filepath.Join(tmpDir, ".env")
	content := []byte("TELEGRAM_BOT_TOKEN=你的_Telegram_Bot_Token\nDEEPSEEK_MODEL=deepseek-chat\n")
	require.NoError(t, os.WriteFile(src, content, 0600))

	require.NoError(t, CopyFile(src, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, content, got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dest)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestCopyFileRefusesToOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src")
	dest := filepath.Join(tmpDir, "dest")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0644))

	require.Error(t, CopyFile(src, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "old", string(got))
}

func TestCopyFileMissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "dest")

	require.Error(t, CopyFile(filepath.Join(tmpDir, "missing"), dest))
	require.NoFileExists(t, dest)
}
