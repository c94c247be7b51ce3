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

// rawResult mirrors the top-level shape of a scancode-toolkit --json-pp
// output file. It is deliberately partial (every other key is ignored on
// decode) because this engine only reads the handful of fields it needs, and
// the rest of the document is schema-drift-prone across scancode-toolkit
// releases.
type rawResult struct {
	Headers    []rawHeader `json:"headers"`
	FilesCount *int        `json:"files_count"` // older shape, top-level
	Files      []rawFile   `json:"files"`
}

// rawHeader is one entry of the "headers" array. The newer schema nests the
// file count inside extra_data.
type rawHeader struct {
	ExtraData rawExtraData `json:"extra_data"`
}

type rawExtraData struct {
	FilesCount []int `json:"files_count"`
}

// rawFile is one entry of "files".
type rawFile struct {
	Path       string            `json:"path"`
	Licenses   []rawLicenseEntry `json:"licenses"`
	Copyrights []rawCopyright    `json:"copyrights"`
	ScanErrors []string          `json:"scan_errors"`
}

// rawLicenseEntry is one entry of a file's "licenses" array.
type rawLicenseEntry struct {
	Key            string `json:"key"`
	SpdxLicenseKey string `json:"spdx_license_key"`
	StartLine      int    `json:"start_line"`
	EndLine        int    `json:"end_line"`
}

// rawCopyright is one entry of a file's "copyrights" array. Older
// scancode-toolkit releases emit a single "value" string; newer releases emit
// a "statements" array. Both are tolerated.
type rawCopyright struct {
	Statements []string `json:"statements"`
	Value      *string  `json:"value"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
}

// statements returns the normalized list of copyright statement strings for
// this entry, bridging the statements/value schema drift.
func (c rawCopyright) statements() []string {
	if len(c.Statements) > 0 {
		return c.Statements
	}
	if c.Value != nil {
		return []string{*c.Value}
	}
	return nil
}

// filesCount implements the File Counter (4.C): prefer the modern
// headers[*].extra_data.files_count shape, fall back to the legacy top-level
// files_count, and report whether either was present at all.
func (r *rawResult) filesCount() (int, bool) {
	for _, h := range r.Headers {
		if len(h.ExtraData.FilesCount) > 0 {
			return h.ExtraData.FilesCount[0], true
		}
	}
	if r.FilesCount != nil {
		return *r.FilesCount, true
	}
	return 0, false
}

// emptyRawResult is the empty tree sentinel described in 4.A: a value that
// satisfies every later field access as "missing" without the caller needing
// to special-case a nil result.
func emptyRawResult() *rawResult {
	return &rawResult{}
}
