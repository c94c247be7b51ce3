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

import "fmt"

// Options tunes the behaviour of Scan. The zero value is usable and applies
// the documented defaults.
type Options struct {
	// RootLicenseMatchers overrides DefaultRootLicenseMatchers.
	RootLicenseMatchers []string `validate:"omitempty,dive,required"`

	// ProximityTolerance overrides DefaultProximityTolerance.
	ProximityTolerance int `validate:"gte=0"`

	// TimeoutSeconds overrides DefaultTimeoutSeconds, the value
	// mapTimeoutErrors compares matched timeouts against.
	TimeoutSeconds int `validate:"gte=0"`
}

func (o Options) matchers() []string {
	if len(o.RootLicenseMatchers) > 0 {
		return o.RootLicenseMatchers
	}
	return DefaultRootLicenseMatchers
}

func (o Options) tolerance() int {
	if o.ProximityTolerance > 0 {
		return o.ProximityTolerance
	}
	return DefaultProximityTolerance
}

func (o Options) timeout() int {
	if o.TimeoutSeconds > 0 {
		return o.TimeoutSeconds
	}
	return DefaultTimeoutSeconds
}

// buildDiagnostics implements the diagnostic-collection half of the Summary
// Builder (4.H): the concatenation of scan_errors per file, each tagged with
// its path in the "<text> (File: <path>)" format that the Error Mapper's
// regexes are anchored against.
func buildDiagnostics(result *rawResult) []Diagnostic {
	diagnostics := []Diagnostic{}
	for _, file := range result.Files {
		for _, text := range file.ScanErrors {
			diagnostics = append(diagnostics, Diagnostic{
				Source:  ScannerName,
				Message: fmt.Sprintf("%s (File: %s)", text, file.Path),
			})
		}
	}
	return diagnostics
}

// buildSummary implements the Summary Builder (4.H), composing the final,
// immutable ScanSummary from everything the earlier components produced.
func buildSummary(startTime, endTime string, fileCount int, findings []LicenseFindings, diagnostics []Diagnostic) ScanSummary {
	return ScanSummary{
		StartTime:   startTime,
		EndTime:     endTime,
		FileCount:   fileCount,
		Findings:    findings,
		Diagnostics: diagnostics,
	}
}
