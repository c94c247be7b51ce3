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

// Package scancode ingests the raw JSON produced by the scancode-toolkit
// license and copyright scanner and turns it into a typed finding model. It
// also associates copyright statements with the license findings that they
// most likely belong to, and compacts the free-form error text that the tool
// emits into a small set of deduplicated diagnostics.
package scancode

import (
	"fmt"
	"sort"
)

// NoAssertion is used whenever scancode could not determine a license for a
// match.
const NoAssertion = "NOASSERTION"

// ScannerName identifies the external tool that findings are attributed to.
// It's lower-cased and used as the middle segment of synthetic
// LicenseRef-<scanner>-<key> identifiers.
const ScannerName = "scancode"

// TextLocation is a location inside a scanned file. StartLine and EndLine are
// both 1-indexed and StartLine is always <= EndLine.
type TextLocation struct {
	Path      string
	StartLine int
	EndLine   int
}

// Cmp provides the total order used to keep location sets sorted: by path,
// then by start line, then by end line.
func (t TextLocation) Cmp(o TextLocation) int {
	if t.Path != o.Path {
		if t.Path < o.Path {
			return -1
		}
		return 1
	}
	if t.StartLine != o.StartLine {
		if t.StartLine < o.StartLine {
			return -1
		}
		return 1
	}
	if t.EndLine != o.EndLine {
		if t.EndLine < o.EndLine {
			return -1
		}
		return 1
	}
	return 0
}

func (t TextLocation) String() string {
	return fmt.Sprintf("%s:%d-%d", t.Path, t.StartLine, t.EndLine)
}

// LicenseFinding is a single raw license match at one location.
type LicenseFinding struct {
	License  string
	Location TextLocation
}

// CopyrightFinding is a single raw copyright statement at one location.
type CopyrightFinding struct {
	Statement string
	Location  TextLocation
}

// locationSet is an ordered set of TextLocation, sorted and deduplicated.
type locationSet struct {
	items []TextLocation
}

func newLocationSet() *locationSet {
	return &locationSet{}
}

// add inserts the location if it's not already present, keeping the slice
// sorted at all times.
func (s *locationSet) add(loc TextLocation) {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i].Cmp(loc) >= 0 })
	if i < len(s.items) && s.items[i].Cmp(loc) == 0 {
		return // duplicate
	}
	s.items = append(s.items, TextLocation{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = loc
}

func (s *locationSet) slice() []TextLocation {
	if s == nil {
		return nil
	}
	out := make([]TextLocation, len(s.items))
	copy(out, s.items)
	return out
}

// CopyrightFindings aggregates every location a single copyright statement
// was observed at, within the context of one parent license.
type CopyrightFindings struct {
	Statement string
	Locations []TextLocation
}

// LicenseFindings aggregates every location a license was found at across the
// whole scanned tree, along with the copyrights attributed to it.
type LicenseFindings struct {
	License    string
	Locations  []TextLocation
	Copyrights []CopyrightFindings
}

// Diagnostic is a single human-readable note attached to a scan, derived from
// a per-file scan_errors entry.
type Diagnostic struct {
	Source   string
	Message  string
	Severity string
}

// ScanSummary is the final, immutable product of a scanPath invocation.
type ScanSummary struct {
	StartTime   string
	EndTime     string
	FileCount   int
	Findings    []LicenseFindings
	Diagnostics []Diagnostic
}

// sortLicenseFindings sorts a slice of LicenseFindings by license string,
// satisfying the total order required by the data model.
func sortLicenseFindings(findings []LicenseFindings) {
	sort.Slice(findings, func(i, j int) bool { return findings[i].License < findings[j].License })
}

// sortCopyrightFindings sorts a slice of CopyrightFindings by statement text.
func sortCopyrightFindings(findings []CopyrightFindings) {
	sort.Slice(findings, func(i, j int) bool { return findings[i].Statement < findings[j].Statement })
}
