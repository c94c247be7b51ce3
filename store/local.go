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
	"fmt"
	"os"
	"path/filepath"

	"github.com/opencodescan/scanengine/scancode"
	"github.com/opencodescan/scanengine/util/errwrap"
)

// LocalStore archives results under a directory on the local filesystem. The
// scanengine command does not use it: it archives only to S3, and only when
// --s3-bucket is given.
type LocalStore struct {
	Debug bool
	Logf  func(format string, v ...interface{})

	// Dir is the directory results are written into. It's created if it
	// doesn't already exist.
	Dir string
}

func (obj *LocalStore) logf(format string, v ...interface{}) {
	if obj.Logf != nil {
		obj.Logf(format, v...)
	}
}

// Put writes result to <Dir>/<scannerName>-<sanitized configKey>.json and
// returns that path.
func (obj *LocalStore) Put(ctx context.Context, scannerName, configKey string, result *scancode.ScanResult) (string, error) {
	if obj.Dir == "" {
		return "", fmt.Errorf("must specify a Dir")
	}
	if err := os.MkdirAll(obj.Dir, 0o755); err != nil {
		return "", errwrap.Wrapf(err, "error creating store dir %s", obj.Dir)
	}

	data, err := marshal(result)
	if err != nil {
		return "", errwrap.Wrapf(err, "error marshalling result")
	}

	path := filepath.Join(obj.Dir, objectName(scannerName, configKey))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errwrap.Wrapf(err, "error writing result to %s", path)
	}

	obj.logf("wrote result to %s", path)
	return path, nil
}
