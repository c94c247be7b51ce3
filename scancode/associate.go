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

// DefaultProximityTolerance is the default line-distance tolerance (T) used
// by the closest-copyrights rule (4.E). It's chosen to bridge blank lines
// between a copyright header and its license without spanning into an
// unrelated adjacent block.
const DefaultProximityTolerance = 5

// abs is a tiny local integer absolute value; there's no generic one in the
// standard library before the math package's float-only Abs.
func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// associateFile implements the Per-File Associator (4.E). All of licenses and
// copyrights must share one path (the caller's responsibility; AssociateFindings
// enforces it by construction). It returns, for each license string, the set
// of copyrights (grouped by statement, with unioned locations) attributed to
// it within this one file.
func associateFile(licenseFindings []LicenseFinding, copyrightFindings []CopyrightFinding, rootLicense string, tolerance int) map[string]*licenseBucket {
	buckets := map[string]*licenseBucket{}
	bucket := func(license string) *licenseBucket {
		b, ok := buckets[license]
		if !ok {
			b = newLicenseBucket()
			buckets[license] = b
		}
		return b
	}

	switch len(licenseFindings) {
	case 0:
		if len(copyrightFindings) == 0 {
			return buckets
		}
		if rootLicense == "" {
			// unattributed copyrights: intentionally dropped, see 4.E / 4.9.
			return buckets
		}
		b := bucket(rootLicense)
		for _, c := range copyrightFindings {
			b.add(c)
		}
		return buckets

	case 1:
		b := bucket(licenseFindings[0].License)
		for _, c := range copyrightFindings {
			b.add(c)
		}
		return buckets

	default:
		for _, l := range licenseFindings {
			b := bucket(l.License)
			for _, c := range copyrightFindings {
				if abs(c.Location.StartLine-l.Location.StartLine) <= tolerance {
					b.add(c)
				}
			}
		}
		return buckets
	}
}

// licenseBucket accumulates the copyrights attributed to one license within
// one file, grouped by statement text so that repeated statements merge their
// locations instead of duplicating.
type licenseBucket struct {
	byStatement map[string]*locationSet
	order       []string
}

func newLicenseBucket() *licenseBucket {
	return &licenseBucket{byStatement: map[string]*locationSet{}}
}

func (b *licenseBucket) add(c CopyrightFinding) {
	set, ok := b.byStatement[c.Statement]
	if !ok {
		set = newLocationSet()
		b.byStatement[c.Statement] = set
		b.order = append(b.order, c.Statement)
	}
	set.add(c.Location)
}

func (b *licenseBucket) merge(other *licenseBucket) {
	for _, statement := range other.order {
		set, ok := b.byStatement[statement]
		if !ok {
			set = newLocationSet()
			b.byStatement[statement] = set
			b.order = append(b.order, statement)
		}
		for _, loc := range other.byStatement[statement].slice() {
			set.add(loc)
		}
	}
}

func (b *licenseBucket) copyrightFindings() []CopyrightFindings {
	out := make([]CopyrightFindings, 0, len(b.order))
	for _, statement := range b.order {
		out = append(out, CopyrightFindings{
			Statement: statement,
			Locations: b.byStatement[statement].slice(),
		})
	}
	sortCopyrightFindings(out)
	return out
}

// AssociateFindings implements the Corpus Associator (4.F): it groups
// licenses and copyrights by path, runs the Per-File Associator over each
// path, and folds the results into one LicenseFindings per license that
// appears in either the location map or the copyright map.
func AssociateFindings(licenseFindings []LicenseFinding, copyrightFindings []CopyrightFinding, matchers []string, tolerance int) []LicenseFindings {
	licensesByPath := map[string][]LicenseFinding{}
	copyrightsByPath := map[string][]CopyrightFinding{}
	paths := map[string]struct{}{}

	for _, l := range licenseFindings {
		licensesByPath[l.Location.Path] = append(licensesByPath[l.Location.Path], l)
		paths[l.Location.Path] = struct{}{}
	}
	for _, c := range copyrightFindings {
		copyrightsByPath[c.Location.Path] = append(copyrightsByPath[c.Location.Path], c)
		paths[c.Location.Path] = struct{}{}
	}

	root := rootLicense(licenseFindings, matchers)

	corpusBuckets := map[string]*licenseBucket{}
	for path := range paths {
		perFile := associateFile(licensesByPath[path], copyrightsByPath[path], root, tolerance)
		for license, bucket := range perFile {
			b, ok := corpusBuckets[license]
			if !ok {
				b = newLicenseBucket()
				corpusBuckets[license] = b
			}
			b.merge(bucket)
		}
	}

	locationsForLicense := map[string]*locationSet{}
	for _, l := range licenseFindings {
		set, ok := locationsForLicense[l.License]
		if !ok {
			set = newLocationSet()
			locationsForLicense[l.License] = set
		}
		set.add(l.Location)
	}

	licenseNames := map[string]struct{}{}
	for license := range locationsForLicense {
		licenseNames[license] = struct{}{}
	}
	for license := range corpusBuckets {
		licenseNames[license] = struct{}{}
	}

	out := make([]LicenseFindings, 0, len(licenseNames))
	for license := range licenseNames {
		var locations []TextLocation
		if set, ok := locationsForLicense[license]; ok {
			locations = set.slice()
		}
		var copyrights []CopyrightFindings
		if bucket, ok := corpusBuckets[license]; ok {
			copyrights = bucket.copyrightFindings()
		}
		out = append(out, LicenseFindings{
			License:    license,
			Locations:  locations,
			Copyrights: copyrights,
		})
	}
	sortLicenseFindings(out)
	return out
}
