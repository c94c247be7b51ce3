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

// Package invoker runs the scancode binary as a subprocess and hands its
// output to the scancode package for ingestion. It owns the process-level
// half of the Invoker contract (spec.md 4.G): deciding whether a non-zero
// scancode exit is still reported as a successful scan.
package invoker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/opencodescan/scanengine/scancode"
	"github.com/opencodescan/scanengine/util/errwrap"
	"github.com/opencodescan/scanengine/util/safepath"
)

// Program is the name of the scancode executable.
const Program = "scancode"

// Invoker runs scancode against one file path at a time. It would probably be
// more efficient to batch many paths into a single scancode invocation, but
// one-file-per-process keeps the failure mode of each scan isolated.
type Invoker struct {
	Debug bool
	Logf  func(format string, v ...interface{})

	// Program overrides the scancode executable name or path. Defaults to
	// Program.
	Program string

	// Options tunes scancode.Scan; see scancode.Options.
	Options scancode.Options
}

func (obj *Invoker) program() string {
	if obj.Program != "" {
		return obj.Program
	}
	return Program
}

func (obj *Invoker) logf(format string, v ...interface{}) {
	if obj.Logf != nil {
		obj.Logf(format, v...)
	}
}

// Validate runs --help the first time to confirm scancode is on the PATH and
// finish any one-time setup it wants to do.
func (obj *Invoker) Validate(ctx context.Context) error {
	args := []string{"--help"}

	obj.logf("running: %s %s", obj.program(), strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, obj.program(), args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
	if err := cmd.Run(); err != nil {
		return errwrap.Wrapf(err, "error running: %s %s", obj.program(), strings.Join(args, " "))
	}
	return nil
}

// Result is what Invoke hands back: the scan result itself plus the
// process-level verdict the Invoker contract computed.
type Result struct {
	ScanResult *scancode.ScanResult

	// Success is the Invoker contract's verdict (spec.md 4.G): true if
	// scancode exited zero, or if it exited non-zero but every failure
	// was classified as benign (memory-only or timeout-only).
	Success bool

	// ExitErr is the raw process error, set whenever scancode's exit code
	// was non-zero, regardless of Success.
	ExitErr error
}

// Invoke runs scancode against path, writes its JSON output to a temp file,
// and hands that file to scancode.Scan. It never returns a nil *Result on a
// nil error.
func (obj *Invoker) Invoke(ctx context.Context, path safepath.Path) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out, err := os.CreateTemp("", "scancode-result-*.json")
	if err != nil {
		return nil, errwrap.Wrapf(err, "error creating temp result file")
	}
	outPath := out.Name()
	defer os.Remove(outPath)

	// TODO: --processes $NUM_CPUS
	args := []string{"--license", "--copyright", "--full-root", "--json-pp", outPath, path.Path()}

	prog := fmt.Sprintf("%s %s", obj.program(), strings.Join(args, " "))
	obj.logf("running: %s", prog)

	cmd := exec.CommandContext(ctx, obj.program(), args...)
	// ignore signals sent to our parent process; we're in our own group
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}

	var exitErr error
	if err := cmd.Run(); err != nil {
		exitErr = err // non-zero exit; scancode might still have written a usable partial result
	}
	out.Close()

	details := scancode.ScannerDetails{
		Name: Program,
	}

	scanResult, err := scancode.Scan(outPath, details, obj.Options)
	if err != nil {
		return nil, errwrap.Wrapf(err, "error scanning result of: %s", prog)
	}
	scanResult.Provenance = path.Path()

	success := exitErr == nil || scanResult.MemoryOnly || scanResult.TimeoutOnly
	if !success {
		obj.logf("scancode failed on %s: %v", path, exitErr)
	}

	return &Result{
		ScanResult: scanResult,
		Success:    success,
		ExitErr:    exitErr,
	}, nil
}
