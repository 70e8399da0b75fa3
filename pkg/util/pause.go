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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WaitForAck blocks until the user acknowledges the prompt. On a terminal a
// single-button form is shown; otherwise one line is read from in, and EOF
// counts as acknowledgment.
func WaitForAck(ctx context.Context, in *os.File, out io.Writer, prompt string) error {
	if IsInteractive(in) {
		return huh.NewForm(huh.NewGroup(
			huh.NewNote().
				Title(prompt).
				Next(true).
				NextLabel("Close"),
		)).WithTheme(Theme).RunWithContext(ctx)
	}
	return waitForLine(in, out, prompt)
}

func waitForLine(in io.Reader, out io.Writer, prompt string) error {
	fmt.Fprintln(out, prompt)
	_, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
