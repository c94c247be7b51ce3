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

// Package licenses provides a small representation of software licenses. It
// recognizes a curated subset of well-known SPDX identifiers; it does not
// vendor the full SPDX license-list-data submodule (that data isn't part of
// this tree, see DESIGN.md), so License.Validate only checks that a license
// is either a non-empty SPDX id without whitespace (known to the curated
// table or not) or a custom id with an Origin. It never attempts to interpret
// an SPDX license expression.
package licenses

import (
	"fmt"
	"strings"
)

// knownSPDXIDs is a curated subset of the SPDX license list, covering the
// identifiers this codebase's test fixtures and common inputs actually use.
// It is intentionally not exhaustive.
var knownSPDXIDs = map[string]string{
	"MIT":               "MIT License",
	"Apache-2.0":        "Apache License 2.0",
	"BSD-2-Clause":      "BSD 2-Clause \"Simplified\" License",
	"BSD-3-Clause":      "BSD 3-Clause \"New\" or \"Revised\" License",
	"ISC":               "ISC License",
	"GPL-2.0-only":      "GNU General Public License v2.0 only",
	"GPL-2.0-or-later":  "GNU General Public License v2.0 or later",
	"GPL-3.0-only":      "GNU General Public License v3.0 only",
	"GPL-3.0-or-later":  "GNU General Public License v3.0 or later",
	"LGPL-2.1-only":     "GNU Lesser General Public License v2.1 only",
	"LGPL-2.1-or-later": "GNU Lesser General Public License v2.1 or later",
	"LGPL-3.0-only":     "GNU Lesser General Public License v3.0 only",
	"MPL-2.0":           "Mozilla Public License 2.0",
	"AGPL-3.0-only":     "GNU Affero General Public License v3.0 only",
	"AGPL-3.0-or-later": "GNU Affero General Public License v3.0 or later",
	"Unlicense":         "The Unlicense",
	"CC0-1.0":           "Creative Commons Zero v1.0 Universal",
}

// License is a representation of a license. It's better than a bare SPDX id
// string because it also represents tool-specific identifiers that have no
// SPDX equivalent, via the Origin/Custom pair.
type License struct {
	// SPDX is the well-known SPDX id for the license, if any.
	SPDX string

	// Origin names a different license provenance for a custom
	// identifier, e.g. "scancode-toolkit.nexB.github.com".
	Origin string
	// Custom is a unique identifier for the license within Origin's
	// namespace, e.g. a LicenseRef-scancode-* key.
	Custom string
}

// String returns a display form of whatever license is specified.
func (l *License) String() string {
	if l.Origin != "" && l.Custom != "" {
		return fmt.Sprintf("%s(%s)", l.Custom, l.Origin)
	}
	if l.Origin == "" && l.Custom != "" {
		return fmt.Sprintf("%s(unknown)", l.Custom)
	}
	return l.SPDX
}

// Validate returns an error if the license doesn't have a coherent
// representation. An SPDX id is accepted whether or not it's in the curated
// knownSPDXIDs table, as long as it's non-empty and has no whitespace — the
// curated table is only used for Name lookups, not as a gate.
func (l *License) Validate() error {
	if l.SPDX != "" {
		if strings.ContainsAny(l.SPDX, " \t\n") {
			return fmt.Errorf("invalid SPDX id: %q", l.SPDX)
		}
		return nil
	}
	if l.Origin != "" && l.Custom != "" {
		return nil
	}
	if l.Origin == "" && l.Custom != "" {
		return fmt.Errorf("unknown custom license: %s", l.Custom)
	}
	return fmt.Errorf("unknown license format")
}

// Cmp compares two licenses for exact equality of all three fields.
func (l *License) Cmp(o *License) error {
	if l.SPDX != o.SPDX {
		return fmt.Errorf("the SPDX field differs")
	}
	if l.Origin != o.Origin {
		return fmt.Errorf("the Origin field differs")
	}
	if l.Custom != o.Custom {
		return fmt.Errorf("the Custom field differs")
	}
	return nil
}

// Name returns the curated human-readable name for an SPDX id, if known.
func Name(spdx string) (string, bool) {
	name, ok := knownSPDXIDs[spdx]
	return name, ok
}

// Known reports whether spdx is in the curated table of recognized SPDX ids.
func Known(spdx string) bool {
	_, ok := knownSPDXIDs[spdx]
	return ok
}

// Join joins the string representations of a list of licenses with ", ".
func Join(list []*License) string {
	parts := make([]string, 0, len(list))
	for _, l := range list {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, ", ")
}

// InList returns true if needle exists inside haystack, using Cmp for
// equality.
func InList(needle *License, haystack []*License) bool {
	for _, x := range haystack {
		if needle.Cmp(x) == nil {
			return true
		}
	}
	return false
}
