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

// Package store archives a scancode.ScanResult under a key built from the
// Configuration Serializer (spec.md 4.I), so that identical scanner identity
// plus configuration always resolves to the same archived result.
package store

import (
	"context"
	"encoding/json"

	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/opencodescan/scanengine/scancode"
)

// Store archives a scan result and returns a URL (or path) that can be used
// to retrieve it later.
type Store interface {
	Put(ctx context.Context, scannerName, configKey string, result *scancode.ScanResult) (string, error)
}

// objectName builds the filesystem- and object-key-safe name for one archived
// result: <scanner>-<sanitized config key>.json.
func objectName(scannerName, configKey string) string {
	return scannerName + "-" + sanitized_anchor_name.Create(configKey) + ".json"
}

// archivedResult is what actually gets marshalled to the store: the scanner
// details, the summary, and the raw tree (kept for audit purposes).
// ScanResult.Provenance and the MemoryOnly/TimeoutOnly verdicts are not
// archived.
type archivedResult struct {
	ScannerDetails scancode.ScannerDetails `json:"scanner_details"`
	Summary        scancode.ScanSummary    `json:"summary"`
	RawTree        interface{}             `json:"raw_tree,omitempty"`
}

func marshal(result *scancode.ScanResult) ([]byte, error) {
	return json.MarshalIndent(archivedResult{
		ScannerDetails: result.ScannerDetails,
		Summary:        result.Summary,
		RawTree:        result.RawTree,
	}, "", "  ")
}
