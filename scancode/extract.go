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
	"strings"

	"github.com/opencodescan/scanengine/util/licenses"
)

// ScannerOrigin is the License.Origin recorded for any tool-specific key that
// has no SPDX equivalent, mirroring backend/scancode.go's
// scancodeLicenseHelper ("scancode-toolkit.nexB.github.com").
const ScannerOrigin = "scancode-toolkit.nexB.github.com"

// licenseID implements the license-id rule used by the Finding Extractor
// (4.B): prefer the SPDX key if the tool supplied one, fall back to the raw
// key, mapping "unknown" to NOASSERTION, and otherwise synthesize a
// LicenseRef-<scanner>-<key> identifier for tool-specific keys that have no
// SPDX equivalent. The candidate is represented and checked through
// util/licenses.License the same way scancodeLicenseHelper builds and
// validates a licenses.License before deciding whether to keep the SPDX form
// or fall back to a Custom one.
func licenseID(entry rawLicenseEntry) string {
	if entry.SpdxLicenseKey != "" {
		candidate := &licenses.License{SPDX: entry.SpdxLicenseKey}
		if err := candidate.Validate(); err == nil {
			return candidate.SPDX
		}
		// a malformed SpdxLicenseKey (eg embedded whitespace) falls
		// through to the synthetic form below instead of propagating
		// garbage into the license-string total order.
	}

	if entry.Key == "unknown" {
		return NoAssertion
	}

	ref := &licenses.License{
		Origin: ScannerOrigin,
		Custom: "LicenseRef-" + strings.ToLower(ScannerName) + "-" + entry.Key,
	}
	if err := ref.Validate(); err != nil {
		// unreachable: Origin and Custom are always both set above.
		return ref.Custom
	}
	return ref.Custom
}

// extractLicenseFindings walks result.files[*].licenses and emits one
// LicenseFinding per entry.
func extractLicenseFindings(result *rawResult) []LicenseFinding {
	findings := []LicenseFinding{}
	for _, file := range result.Files {
		for _, entry := range file.Licenses {
			findings = append(findings, LicenseFinding{
				License: licenseID(entry),
				Location: TextLocation{
					Path:      file.Path,
					StartLine: entry.StartLine,
					EndLine:   entry.EndLine,
				},
			})
		}
	}
	return findings
}

// extractCopyrightFindings walks result.files[*].copyrights and emits one
// CopyrightFinding per statement, bridging the statements/value schema drift
// inside rawCopyright.statements().
func extractCopyrightFindings(result *rawResult) []CopyrightFinding {
	findings := []CopyrightFinding{}
	for _, file := range result.Files {
		for _, entry := range file.Copyrights {
			loc := TextLocation{
				Path:      file.Path,
				StartLine: entry.StartLine,
				EndLine:   entry.EndLine,
			}
			for _, statement := range entry.statements() {
				findings = append(findings, CopyrightFinding{
					Statement: statement,
					Location:  loc,
				})
			}
		}
	}
	return findings
}

// fileCount implements the File Counter (4.C). It is fatal for a non-empty
// result tree to be missing both shapes of the file count.
func fileCount(result *rawResult) (int, error) {
	count, ok := result.filesCount()
	if !ok {
		if len(result.Files) == 0 {
			// an empty tree sentinel legitimately has no file count.
			return 0, nil
		}
		return 0, fmt.Errorf("scancode result is missing a files_count")
	}
	return count, nil
}
