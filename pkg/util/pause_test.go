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

package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaitForLine(t *testing.T) {
	t.Run("reads one line", func(t *testing.T) {
		in := strings.NewReader("\nleftover\n")
		var out bytes.Buffer
		require.NoError(t, waitForLine(in, &out, "Press Enter to close"))
		require.Equal(t, "Press Enter to close\n", out.String())
	})

	t.Run("eof acknowledges", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, waitForLine(strings.NewReader(""), &out, "bye"))
		require.Equal(t, "bye\n", out.String())
	})
}
