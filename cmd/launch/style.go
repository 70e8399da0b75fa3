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

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	launcher "github.com/livekit/companion-launcher"
	"github.com/livekit/companion-launcher/pkg/bootstrap"
	"github.com/livekit/companion-launcher/pkg/util"
)

var (
	checkNameStyle = lipgloss.NewStyle().Width(32)
	stepStyle      = lipgloss.NewStyle().Foreground(util.DimFg)
	statusMarks    = map[bootstrap.CheckStatus]string{
		bootstrap.CheckOK:   util.SuccessStyle.Render("✓"),
		bootstrap.CheckWarn: util.WarnStyle.Render("!"),
		bootstrap.CheckFail: util.ErrorStyle.Render("✗"),
	}
)

// console writes user-facing messages; it implements bootstrap.Reporter.
type console struct {
	out io.Writer
	err io.Writer
}

func newConsole(out, err io.Writer) *console {
	return &console{out: out, err: err}
}

func (c *console) Banner() {
	fmt.Fprintln(c.out, util.BannerStyle.Render("Companion launcher "+launcher.Version))
}

func (c *console) Progress(step bootstrap.Step, msg string) {
	fmt.Fprintln(c.out, stepStyle.Render(fmt.Sprintf("[%s]", step))+" "+msg)
}

func (c *console) Success(msg string) {
	fmt.Fprintln(c.out, util.SuccessStyle.Render("✓ "+msg))
}

func (c *console) Warn(msg string) {
	fmt.Fprintln(c.err, util.WarnStyle.Render("! "+msg))
}

func (c *console) Error(msg, hint string) {
	fmt.Fprintln(c.err, util.ErrorStyle.Render("✗ "+msg))
	if hint != "" {
		fmt.Fprintln(c.err, util.HintStyle.Render(hint))
	}
}

func (c *console) Detail(msg string) {
	fmt.Fprintln(c.err, util.HintStyle.Render(util.Dimmed(msg)))
}

func (c *console) Check(r bootstrap.CheckResult) {
	fmt.Fprintln(c.out, statusMarks[r.Status]+" "+checkNameStyle.Render(r.Name)+util.Dimmed(r.Detail))
}
