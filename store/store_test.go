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

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencodescan/scanengine/scancode"
)

func TestObjectNameIsSanitized(t *testing.T) {
	got := objectName("scancode", "--license --copyright --json-pp")
	if !strings.HasPrefix(got, "scancode-") {
		t.Errorf("got %q, want it to start with scancode-", got)
	}
	if !strings.HasSuffix(got, ".json") {
		t.Errorf("got %q, want it to end with .json", got)
	}
	if strings.ContainsAny(got, " /") {
		t.Errorf("got %q, expected no spaces or slashes", got)
	}
}

func TestObjectNameDeterministic(t *testing.T) {
	a := objectName("scancode", "--license --json-pp")
	b := objectName("scancode", "--license --json-pp")
	if a != b {
		t.Errorf("expected the same config key to always produce the same object name: %q != %q", a, b)
	}
}

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	s := &LocalStore{Dir: dir}

	result := &scancode.ScanResult{
		ScannerDetails: scancode.ScannerDetails{Name: "scancode", Version: "32.1.0"},
		Summary: scancode.ScanSummary{
			FileCount: 3,
		},
	}

	path, err := s.Put(context.Background(), "scancode", "--license --json-pp", result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("got path %q, expected it inside %q", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read back written file: %v", err)
	}
	var archived archivedResult
	if err := json.Unmarshal(data, &archived); err != nil {
		t.Fatalf("could not unmarshal archived result: %v", err)
	}
	if archived.Summary.FileCount != 3 {
		t.Errorf("got file count %d, want 3", archived.Summary.FileCount)
	}
}

func TestLocalStorePutRequiresDir(t *testing.T) {
	s := &LocalStore{}
	if _, err := s.Put(context.Background(), "scancode", "key", &scancode.ScanResult{}); err == nil {
		t.Errorf("expected an error when Dir is unset")
	}
}
