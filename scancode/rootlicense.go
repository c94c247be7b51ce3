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
	"path/filepath"
	"strings"
)

// DefaultRootLicenseMatchers is the fixed set of path-glob matchers used by
// the Root-License Selector (4.D) to identify commonly named license files.
// Matching is case-insensitive on the file's base name.
var DefaultRootLicenseMatchers = []string{
	"license",
	"license.txt",
	"license.md",
	"licence",
	"licence.txt",
	"copying",
	"copying.txt",
	"license-mit",
	"license-apache",
	"unlicense",
}

// rootLicense implements the Root-License Selector (4.D): it returns the
// license string of the unique LicenseFinding whose location path matches one
// of the given matchers. Zero or multiple matches both yield "". Path parse
// errors are swallowed and treated as non-matches, never propagated.
func rootLicense(findings []LicenseFinding, matchers []string) string {
	matchCount := 0
	candidate := ""

	for _, f := range findings {
		if !matchesRootLicenseFile(f.Location.Path, matchers) {
			continue
		}
		matchCount++
		candidate = f.License
	}

	if matchCount != 1 {
		return ""
	}
	return candidate
}

func matchesRootLicenseFile(path string, matchers []string) bool {
	base := filepath.Base(path)
	for _, m := range matchers {
		ok, err := filepath.Match(m, strings.ToLower(base))
		if err != nil {
			continue // path parse error: treated as a non-match
		}
		if ok {
			return true
		}
	}
	return false
}
