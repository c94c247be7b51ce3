// Copyright Amazon.com Inc or its affiliates and the project contributors
// Written by James Shubin <purple@amazon.com> and the project contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.
//
// We will never require a CLA to submit a patch. All contributions follow the
// `inbound == outbound` rule.
//
// This is not an official Amazon product. Amazon does not offer support for
// this project.

package scancode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTimeoutSeconds is the configured per-file timeout that
// mapTimeoutErrors compares against. Only timeouts matching this value count
// as the benign "Processing interrupted" case.
const DefaultTimeoutSeconds = 300

// unknownErrorPattern is normative (spec.md 4.G / 6): dotall, with named
// groups scanner, error, message, file. One regex application per diagnostic
// entry; we never re-split across newlines.
var unknownErrorPattern = regexp.MustCompile(
	`(?s)(?:ERROR: for scanner: (?P<scanner>[^\n]+):\n)?ERROR: Unknown error:\n.+\n(?P<error>[^\n:]+)(?:\n|:)(?P<message>.+?) \(File: (?P<file>[^)]+)\)`,
)

// timeoutPattern is normative (spec.md 4.G / 6): single-line, with named
// groups scanner, timeout, file.
var timeoutPattern = regexp.MustCompile(
	`(?:ERROR: for scanner: (?P<scanner>[^\n]+):\n)?ERROR: Processing interrupted: timeout after (?P<timeout>\d+) seconds\. \(File: (?P<file>[^)]+)\)`,
)

func namedGroups(re *regexp.Regexp, match []string) map[string]string {
	groups := map[string]string{}
	for i, name := range re.SubexpNames() {
		if name == "" || i >= len(match) {
			continue
		}
		groups[name] = match[i]
	}
	return groups
}

// mapUnknownErrors applies the unknown-error pattern to each diagnostic and
// returns the rewritten entries in a new slice (the input is left unchanged),
// deduplicated by message text preserving first occurrence. It returns true iff the list was non-empty on
// entry, every entry matched, and every match's error was "MemoryError".
func mapUnknownErrors(diagnostics []Diagnostic) ([]Diagnostic, bool) {
	if len(diagnostics) == 0 {
		return diagnostics, false
	}

	memoryOnly := true
	mapped := make([]Diagnostic, len(diagnostics))
	for i, d := range diagnostics {
		match := unknownErrorPattern.FindStringSubmatch(d.Message)
		if match == nil {
			memoryOnly = false
			mapped[i] = d
			continue
		}
		groups := namedGroups(unknownErrorPattern, match)
		file := groups["file"]
		errKind := groups["error"]
		message := strings.TrimSpace(groups["message"])

		if errKind == "MemoryError" {
			mapped[i] = Diagnostic{
				Source:   d.Source,
				Severity: d.Severity,
				Message:  fmt.Sprintf("ERROR: MemoryError while scanning file '%s'.", file),
			}
			continue
		}

		memoryOnly = false
		mapped[i] = Diagnostic{
			Source:   d.Source,
			Severity: d.Severity,
			Message:  fmt.Sprintf("ERROR: %s while scanning file '%s' (%s).", errKind, file, message),
		}
	}

	return dedupeDiagnostics(mapped), memoryOnly
}

// mapTimeoutErrors applies the timeout pattern to each diagnostic and returns
// the rewritten entries in a new slice (the input is left unchanged),
// deduplicated by message text preserving first occurrence. It returns
// true iff every entry matched with a timeout equal to timeoutSeconds.
func mapTimeoutErrors(diagnostics []Diagnostic, timeoutSeconds int) ([]Diagnostic, bool) {
	if len(diagnostics) == 0 {
		return diagnostics, false
	}

	allMatched := true
	mapped := make([]Diagnostic, len(diagnostics))
	for i, d := range diagnostics {
		match := timeoutPattern.FindStringSubmatch(d.Message)
		if match == nil {
			allMatched = false
			mapped[i] = d
			continue
		}
		groups := namedGroups(timeoutPattern, match)
		timeout, err := strconv.Atoi(groups["timeout"])
		if err != nil || timeout != timeoutSeconds {
			allMatched = false
			mapped[i] = d
			continue
		}

		mapped[i] = Diagnostic{
			Source:   d.Source,
			Severity: d.Severity,
			Message:  fmt.Sprintf("ERROR: Timeout after %d seconds while scanning file '%s'.", timeout, groups["file"]),
		}
	}

	return dedupeDiagnostics(mapped), allMatched
}

// dedupeDiagnostics removes duplicate entries by exact message text,
// preserving the first occurrence's position and metadata.
func dedupeDiagnostics(diagnostics []Diagnostic) []Diagnostic {
	seen := map[string]struct{}{}
	out := make([]Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		if _, ok := seen[d.Message]; ok {
			continue
		}
		seen[d.Message] = struct{}{}
		out = append(out, d)
	}
	return out
}

// MapErrors runs the two error-mapping passes (unknown-error, then timeout)
// over diagnostics in sequence, and reports whether the run's failures were
// homogeneous under each classification. This is what the Invoker contract
// (4.G) consults to decide whether a non-zero scancode exit should still be
// reported as a successful scan.
func MapErrors(diagnostics []Diagnostic, timeoutSeconds int) (mapped []Diagnostic, memoryOnly bool, timeoutOnly bool) {
	mapped, memoryOnly = mapUnknownErrors(diagnostics)
	mapped, timeoutOnly = mapTimeoutErrors(mapped, timeoutSeconds)
	return mapped, memoryOnly, timeoutOnly
}
