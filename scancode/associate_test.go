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

func loc(path string, line int) TextLocation {
	return TextLocation{Path: path, StartLine: line, EndLine: line}
}

// TestAssociateSingleLicenseManyCopyrights is scenario S1: one license, three
// copyrights, all of them attach.
func TestAssociateSingleLicenseManyCopyrights(t *testing.T) {
	licenseFindings := []LicenseFinding{
		{License: "MIT", Location: loc("a.c", 1)},
	}
	copyrightFindings := []CopyrightFinding{
		{Statement: "Copyright A", Location: loc("a.c", 1)},
		{Statement: "Copyright B", Location: loc("a.c", 2)},
		{Statement: "Copyright C", Location: loc("a.c", 40)},
	}

	got := AssociateFindings(licenseFindings, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)
	if len(got) != 1 {
		t.Fatalf("expected 1 license, got %d: %+v", len(got), got)
	}
	if got[0].License != "MIT" {
		t.Fatalf("expected MIT, got %s", got[0].License)
	}
	if len(got[0].Copyrights) != 3 {
		t.Fatalf("expected 3 copyrights, got %d: %+v", len(got[0].Copyrights), got[0].Copyrights)
	}
}

// TestAssociateMultiLicenseProximity is scenario S2.
func TestAssociateMultiLicenseProximity(t *testing.T) {
	licenseFindings := []LicenseFinding{
		{License: "Apache-2.0", Location: loc("b.c", 10)},
		{License: "MIT", Location: loc("b.c", 100)},
	}
	copyrightFindings := []CopyrightFinding{
		{Statement: "C8", Location: loc("b.c", 8)},
		{Statement: "C12", Location: loc("b.c", 12)},
		{Statement: "C98", Location: loc("b.c", 98)},
		{Statement: "C200", Location: loc("b.c", 200)},
	}

	got := AssociateFindings(licenseFindings, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)

	byLicense := map[string]LicenseFindings{}
	for _, f := range got {
		byLicense[f.License] = f
	}

	apache, ok := byLicense["Apache-2.0"]
	if !ok {
		t.Fatalf("expected an Apache-2.0 entry, got %+v", got)
	}
	if len(apache.Copyrights) != 2 {
		t.Fatalf("expected 2 copyrights under Apache-2.0, got %+v", apache.Copyrights)
	}

	mit, ok := byLicense["MIT"]
	if !ok {
		t.Fatalf("expected a MIT entry, got %+v", got)
	}
	if len(mit.Copyrights) != 1 || mit.Copyrights[0].Statement != "C98" {
		t.Fatalf("expected only C98 under MIT, got %+v", mit.Copyrights)
	}

	for _, f := range got {
		for _, c := range f.Copyrights {
			if c.Statement == "C200" {
				t.Errorf("C200 should have been dropped, found under %s", f.License)
			}
		}
	}
}

// TestAssociateNoLicensesWithRoot is scenario S3.
func TestAssociateNoLicensesWithRoot(t *testing.T) {
	licenseFindings := []LicenseFinding{
		{License: "BSD-3-Clause", Location: loc("LICENSE", 1)},
	}
	copyrightFindings := []CopyrightFinding{
		{Statement: "Copyright X", Location: loc("c.c", 3)},
		{Statement: "Copyright Y", Location: loc("c.c", 4)},
	}

	got := AssociateFindings(licenseFindings, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)
	if len(got) != 1 {
		t.Fatalf("expected 1 license, got %d: %+v", len(got), got)
	}
	if got[0].License != "BSD-3-Clause" {
		t.Fatalf("expected BSD-3-Clause, got %s", got[0].License)
	}
	if len(got[0].Copyrights) != 2 {
		t.Fatalf("expected 2 copyrights, got %+v", got[0].Copyrights)
	}
}

// TestAssociateNoLicensesNoRootDropsCopyrights covers the "unattributed
// copyrights" design note: no license, no root license available.
func TestAssociateNoLicensesNoRootDropsCopyrights(t *testing.T) {
	copyrightFindings := []CopyrightFinding{
		{Statement: "Copyright X", Location: loc("c.c", 3)},
	}

	got := AssociateFindings(nil, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)
	if len(got) != 0 {
		t.Fatalf("expected no license findings, got %+v", got)
	}
}

// TestToleranceSymmetry is universal property 6.
func TestToleranceSymmetry(t *testing.T) {
	licenseFindings := []LicenseFinding{
		{License: "MIT", Location: loc("a.c", 10)},
		{License: "Apache-2.0", Location: loc("a.c", 50)}, // forces the >= 2 branch
	}
	tests := []struct {
		line int
		want bool
	}{
		{5, true},   // |10-5| == 5 <= 5
		{4, false},  // |10-4| == 6 > 5
		{15, true},  // |10-15| == 5 <= 5
		{16, false}, // |10-16| == 6 > 5
	}
	for _, tc := range tests {
		copyrightFindings := []CopyrightFinding{{Statement: "C", Location: loc("a.c", tc.line)}}
		got := AssociateFindings(licenseFindings, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)
		attached := false
		for _, f := range got {
			if f.License != "MIT" {
				continue
			}
			for _, c := range f.Copyrights {
				if c.Statement == "C" {
					attached = true
				}
			}
		}
		if attached != tc.want {
			t.Errorf("line %d: attached=%v, want %v", tc.line, attached, tc.want)
		}
	}
}

// TestStatementMergingAcrossLocations is universal property 5: statements
// merge their locations rather than duplicating.
func TestStatementMergingAcrossLocations(t *testing.T) {
	licenseFindings := []LicenseFinding{{License: "MIT", Location: loc("a.c", 1)}}
	copyrightFindings := []CopyrightFinding{
		{Statement: "Copyright A", Location: loc("a.c", 1)},
		{Statement: "Copyright A", Location: loc("a.c", 2)},
	}

	got := AssociateFindings(licenseFindings, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)
	if len(got) != 1 || len(got[0].Copyrights) != 1 {
		t.Fatalf("expected one merged statement, got %+v", got)
	}
	if len(got[0].Copyrights[0].Locations) != 2 {
		t.Fatalf("expected 2 locations for the merged statement, got %+v", got[0].Copyrights[0].Locations)
	}
}

// TestDeterminism is universal property 1: repeated runs over the same input
// produce identical ordered output.
func TestDeterminism(t *testing.T) {
	licenseFindings := []LicenseFinding{
		{License: "MIT", Location: loc("a.c", 1)},
		{License: "Apache-2.0", Location: loc("b.c", 1)},
	}
	copyrightFindings := []CopyrightFinding{
		{Statement: "Copyright A", Location: loc("a.c", 1)},
		{Statement: "Copyright B", Location: loc("b.c", 1)},
	}

	first := AssociateFindings(licenseFindings, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)
	for i := 0; i < 10; i++ {
		again := AssociateFindings(licenseFindings, copyrightFindings, DefaultRootLicenseMatchers, DefaultProximityTolerance)
		if len(again) != len(first) {
			t.Fatalf("run %d: length differs", i)
		}
		for j := range first {
			if first[j].License != again[j].License {
				t.Fatalf("run %d: order differs at %d: %s != %s", i, j, first[j].License, again[j].License)
			}
		}
	}
}
