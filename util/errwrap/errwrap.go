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

// Package errwrap provides the two error-composition helpers used all over
// this codebase: Wrapf to add context to a single error, and Append to
// accumulate a growing list of independent errors into one. It's a thin
// wrapper around two well-established libraries rather than a hand-rolled
// implementation, so that %+v formatting and cause-chain unwrapping keep
// working the way callers expect.
package errwrap

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf annotates err with a formatted message, preserving the original error
// as the cause. It returns nil if err is nil, matching errors.Wrapf.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Append adds err to acc, returning a combined error. acc may be nil, in
// which case the result is a multierror holding only err. err may also be
// nil, in which case acc is returned unchanged. The result satisfies the standard error interface
// and also supports errors.Is/As via go-multierror's Unwrap support.
func Append(acc error, err error) error {
	if err == nil {
		return acc
	}
	merged := multierror.Append(acc, err)
	return merged.ErrorOrNil()
}

// Cause returns the underlying cause of err, unwrapping any Wrapf layers.
// It's used at the top of main() to print a short message instead of a full
// stack trace when debug output isn't requested.
func Cause(err error) error {
	return errors.Cause(err)
}
