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

// Package safepath wraps a filesystem path with its directory-ness, so that
// callers don't need to re-Stat a path they already know the shape of, and so
// that a cleaned, absolute form is always available.
package safepath

import (
	"fmt"
	"path/filepath"
)

// Path is an absolute, cleaned filesystem path paired with whether it names a
// directory.
type Path struct {
	path  string
	isDir bool
}

// ParseDir builds a Path known to be a directory.
func ParseDir(path string) (Path, error) {
	return parse(path, true)
}

// ParseFile builds a Path known to be a regular file (or at least, not a
// directory).
func ParseFile(path string) (Path, error) {
	return parse(path, false)
}

func parse(path string, isDir bool) (Path, error) {
	if path == "" {
		return Path{}, fmt.Errorf("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Path{}, fmt.Errorf("could not make path absolute: %w", err)
	}
	return Path{path: filepath.Clean(abs), isDir: isDir}, nil
}

// Path returns the cleaned, absolute string form of this path.
func (p Path) Path() string {
	return p.path
}

// IsDir reports whether this path was built as a directory path.
func (p Path) IsDir() bool {
	return p.isDir
}

func (p Path) String() string {
	return p.path
}
