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

import "time"

// ScannerDetails describes the tool whose output produced a ScanResult.
type ScannerDetails struct {
	Name          string
	Version       string
	Configuration string
}

// ScanResult is the value this engine hands to its collaborators (Invoker,
// results store). Provenance is left for the Invoker to fill in (invoker.Invoke
// sets it to the scanned path); RawTree is passed through unmodified for
// archival.
type ScanResult struct {
	Provenance     interface{}
	ScannerDetails ScannerDetails
	Summary        ScanSummary
	RawTree        interface{}

	// MemoryOnly and TimeoutOnly are the homogeneity verdicts from the
	// Error Mapper (4.G), used by the Invoker contract to decide whether
	// a non-zero scancode exit should still be reported as success.
	MemoryOnly  bool
	TimeoutOnly bool
}

// Scan performs one complete scanPath invocation: it reads the result file at
// path, extracts findings, associates copyrights with licenses, maps the raw
// scan_errors into compact diagnostics, and assembles the final summary. It
// does not decide process-level success/failure; see MapErrors and the
// invoker package for that half of the Invoker contract (4.G).
func Scan(path string, details ScannerDetails, opts Options) (*ScanResult, error) {
	startTime := time.Now().UTC().Format(time.RFC3339)

	raw, err := readResult(path)
	if err != nil {
		return nil, err
	}

	count, err := fileCount(raw)
	if err != nil {
		return nil, err
	}

	licenseFindings := extractLicenseFindings(raw)
	copyrightFindings := extractCopyrightFindings(raw)
	findings := AssociateFindings(licenseFindings, copyrightFindings, opts.matchers(), opts.tolerance())

	diagnostics := buildDiagnostics(raw)
	mapped, memoryOnly, timeoutOnly := MapErrors(diagnostics, opts.timeout())

	endTime := time.Now().UTC().Format(time.RFC3339)
	summary := buildSummary(startTime, endTime, count, findings, mapped)

	return &ScanResult{
		ScannerDetails: details,
		Summary:        summary,
		RawTree:        raw,
		MemoryOnly:     memoryOnly,
		TimeoutOnly:    timeoutOnly,
	}, nil
}
