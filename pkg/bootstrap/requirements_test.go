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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequirements(t *testing.T) {
	content := `# core
python-telegram-bot==20.7
requests>=2.31  # http

-r extra.txt
--index-url https://pypi.org/simple
PyYAML
uvicorn[standard] >=0.24
aiohttp~=3.9 ; python_version >= "3.8"
mylib @ git+https://github.com/example/mylib.git
./vendor/localpkg
`
	reqs, err := ParseRequirements(strings.NewReader(content))
	require.NoError(t, err)

	expected := []Requirement{
		{Name: "python-telegram-bot", Spec: "==20.7", Line: 2},
		{Name: "requests", Spec: ">=2.31", Line: 3},
		{Name: "PyYAML", Line: 7},
		{Name: "uvicorn", Extras: "[standard]", Spec: ">=0.24", Line: 8},
		{Name: "aiohttp", Spec: "~=3.9", Marker: `python_version >= "3.8"`, Line: 9},
		{Name: "mylib", Spec: "@ git+https://github.com/example/mylib.git", Line: 10},
		{Name: "./vendor/localpkg", Line: 11},
	}
	require.Equal(t, expected, reqs)
}

func TestParseRequirementsEmpty(t *testing.T) {
	reqs, err := ParseRequirements(strings.NewReader("\n# nothing yet\n"))
	require.NoError(t, err)
	require.Empty(t, reqs)
}

func TestReadRequirementsMissing(t *testing.T) {
	_, err := ReadRequirements(t.TempDir() + "/requirements.txt")
	require.Error(t, err)
}

func TestRequirementString(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"python-telegram-bot==20.7", "python-telegram-bot==20.7"},
		{"PyYAML", "PyYAML"},
		{"uvicorn[standard] >=0.24  # server", "uvicorn[standard]>=0.24"},
		{`aiohttp~=3.9 ; python_version >= "3.8"`, `aiohttp~=3.9; python_version >= "3.8"`},
		{"mylib @ git+https://github.com/example/mylib.git", "mylib @ git+https://github.com/example/mylib.git"},
		{"./vendor/localpkg", "./vendor/localpkg"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reqs, err := ParseRequirements(strings.NewReader(tt.line))
			require.NoError(t, err)
			require.Len(t, reqs, 1)
			require.Equal(t, tt.expected, reqs[0].String())
		})
	}
}
