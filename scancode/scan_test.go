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
	"os"
	"path/filepath"
	"testing"
)

const fixtureJSON = `{
	"headers": [{"extra_data": {"files_count": [2]}}],
	"files": [
		{
			"path": "a.c",
			"licenses": [{"key": "mit", "spdx_license_key": "MIT", "start_line": 1, "end_line": 1}],
			"copyrights": [{"statements": ["Copyright 2020 Foo"], "start_line": 1, "end_line": 1}]
		},
		{
			"path": "b.c",
			"scan_errors": ["ERROR: Processing interrupted: timeout after 300 seconds."]
		}
	]
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}
	return path
}

func TestScanEndToEnd(t *testing.T) {
	path := writeFixture(t, fixtureJSON)
	details := ScannerDetails{Name: "scancode-toolkit", Version: "31.2.1"}

	result, err := Scan(path, details, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.FileCount != 2 {
		t.Errorf("got file count %d, want 2", result.Summary.FileCount)
	}
	if len(result.Summary.Findings) != 1 {
		t.Fatalf("expected 1 license finding, got %+v", result.Summary.Findings)
	}
	if result.Summary.Findings[0].License != "MIT" {
		t.Errorf("got license %q, want MIT", result.Summary.Findings[0].License)
	}
	if len(result.Summary.Findings[0].Copyrights) != 1 {
		t.Errorf("expected 1 copyright finding, got %+v", result.Summary.Findings[0].Copyrights)
	}
	if len(result.Summary.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", result.Summary.Diagnostics)
	}
	if !result.TimeoutOnly {
		t.Errorf("expected the single timeout diagnostic to classify as timeout-only")
	}
	if result.MemoryOnly {
		t.Errorf("did not expect memory-only classification")
	}
}

func TestScanMissingFileIsEmptySentinelNotError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.json")

	result, err := Scan(path, ScannerDetails{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.FileCount != 0 {
		t.Errorf("got file count %d, want 0", result.Summary.FileCount)
	}
	if len(result.Summary.Findings) != 0 {
		t.Errorf("expected no findings, got %+v", result.Summary.Findings)
	}
}

func TestScanMalformedJSONIsFatal(t *testing.T) {
	path := writeFixture(t, `{"files": [`)
	if _, err := Scan(path, ScannerDetails{}, Options{}); err == nil {
		t.Errorf("expected an error for malformed JSON")
	}
}

func TestScanMissingFilesCountIsFatal(t *testing.T) {
	path := writeFixture(t, `{"files": [{"path": "a.c"}]}`)
	if _, err := Scan(path, ScannerDetails{}, Options{}); err == nil {
		t.Errorf("expected an error for a missing files_count")
	}
}

func TestScanRespectsCustomTolerance(t *testing.T) {
	// the copyright at line 13 is 3 lines from MIT at line 10: within the
	// default tolerance of 5, outside a tolerance of 1
	path := writeFixture(t, `{
	"headers": [{"extra_data": {"files_count": [1]}}],
	"files": [
		{
			"path": "a.c",
			"licenses": [
				{"key": "mit", "spdx_license_key": "MIT", "start_line": 10, "end_line": 10},
				{"key": "apache-2.0", "spdx_license_key": "Apache-2.0", "start_line": 50, "end_line": 50}
			],
			"copyrights": [{"statements": ["Copyright 2020 Foo"], "start_line": 13, "end_line": 13}]
		}
	]
}`)
	result, err := Scan(path, ScannerDetails{}, Options{ProximityTolerance: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Summary.Findings) != 2 {
		t.Fatalf("expected 2 license findings, got %+v", result.Summary.Findings)
	}
	for _, f := range result.Summary.Findings {
		if len(f.Copyrights) != 0 {
			t.Errorf("expected no copyright within tolerance 1, found %+v under %s", f.Copyrights, f.License)
		}
	}
}
