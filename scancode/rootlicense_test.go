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

import "testing"

func TestRootLicenseSingleMatch(t *testing.T) {
	findings := []LicenseFinding{
		{License: "MIT", Location: loc("LICENSE", 1)},
		{License: "Apache-2.0", Location: loc("src/a.c", 1)},
	}
	if got := rootLicense(findings, DefaultRootLicenseMatchers); got != "MIT" {
		t.Errorf("got %q, want MIT", got)
	}
}

func TestRootLicenseCaseInsensitive(t *testing.T) {
	findings := []LicenseFinding{
		{License: "MIT", Location: loc("License.TXT", 1)},
	}
	if got := rootLicense(findings, DefaultRootLicenseMatchers); got != "MIT" {
		t.Errorf("got %q, want MIT", got)
	}
}

func TestRootLicenseZeroMatches(t *testing.T) {
	findings := []LicenseFinding{
		{License: "MIT", Location: loc("src/a.c", 1)},
	}
	if got := rootLicense(findings, DefaultRootLicenseMatchers); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestRootLicenseMultipleMatches(t *testing.T) {
	findings := []LicenseFinding{
		{License: "MIT", Location: loc("LICENSE", 1)},
		{License: "Apache-2.0", Location: loc("LICENSE.txt", 1)},
	}
	if got := rootLicense(findings, DefaultRootLicenseMatchers); got != "" {
		t.Errorf("got %q, want empty string on ambiguous match", got)
	}
}

func TestRootLicenseNoFindings(t *testing.T) {
	if got := rootLicense(nil, DefaultRootLicenseMatchers); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestMatchesRootLicenseFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"LICENSE", true},
		{"license.md", true},
		{"COPYING.txt", true},
		{"nested/dir/LICENSE-APACHE", true},
		{"README.md", false},
		{"license.go", false},
	}
	for _, tc := range tests {
		if got := matchesRootLicenseFile(tc.path, DefaultRootLicenseMatchers); got != tc.want {
			t.Errorf("path %q: got %v, want %v", tc.path, got, tc.want)
		}
	}
}
