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
	"encoding/json"
	"os"

	"github.com/opencodescan/scanengine/util/errwrap"
)

// readResult implements the Result Reader (4.A). If path doesn't exist, isn't
// a regular file, or is empty, it returns the empty tree sentinel rather than
// an error. Any JSON parse failure is fatal: we never partially consume a
// malformed tree.
func readResult(path string) (*rawResult, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return emptyRawResult(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// a Stat that succeeded followed by a failing ReadFile is a real
		// (if rare) I/O failure, not a "missing" condition.
		return nil, errwrap.Wrapf(err, "error reading scancode result file: %s", path)
	}

	var result rawResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errwrap.Wrapf(err, "error decoding scancode result file: %s", path)
	}

	return &result, nil
}
