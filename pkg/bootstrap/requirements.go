// Copyright 2025 LiveKit, Inc.
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
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
)

// match a package name with optional extras, followed by anything
var requirementRegex = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(\[[^\]]*\])?\s*(.*)$`)

// Requirement is one package line from a pip requirements file.
type Requirement struct {
	Name   string
	Extras string
	// Spec is the version specifier or direct reference, e.g. ">=20.0" or
	// "@ git+https://...". Empty means any version.
	Spec string
	// Marker is the environment marker after ';', if any.
	Marker string
	Line   int
}

// String renders the requirement in pip's own notation, without comments.
func (r Requirement) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	sb.WriteString(r.Extras)
	if r.Spec != "" {
		if strings.HasPrefix(r.Spec, "@") {
			sb.WriteString(" ")
		}
		sb.WriteString(r.Spec)
	}
	if r.Marker != "" {
		sb.WriteString("; ")
		sb.WriteString(r.Marker)
	}
	return sb.String()
}

func ReadRequirements(path string) ([]Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRequirements(f)
}

// ParseRequirements reads package lines and skips blanks, comments and pip
// options such as -r or --index-url. Lines that are not package names (local
// paths, bare URLs) are kept with the whole line as Name.
func ParseRequirements(r io.Reader) ([]Requirement, error) {
	var reqs []Requirement

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		req := Requirement{Line: lineNo}
		if i := strings.Index(line, ";"); i >= 0 {
			req.Marker = strings.TrimSpace(line[i+1:])
			line = strings.TrimSpace(line[:i])
		}

		if m := requirementRegex.FindStringSubmatch(line); m != nil && isSpec(m[3]) {
			req.Name = m[1]
			req.Extras = m[2]
			req.Spec = strings.TrimSpace(m[3])
		} else {
			req.Name = line
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// pip only treats '#' as a comment at line start or after whitespace
func stripComment(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return ""
	}
	if i := strings.Index(line, " #"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func isSpec(rest string) bool {
	rest = strings.TrimSpace(rest)
	return rest == "" || strings.ContainsAny(rest[:1], "=<>!~@")
}
