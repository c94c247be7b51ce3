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

import "strings"

// CommandLineOptions groups the raw command-line option sets that the host
// (the Invoker) constructs when it launches scancode. Only a subset of these
// affect the result content; ConfigurationKey picks out exactly that subset,
// per spec.md 4.I / 6.
type CommandLineOptions struct {
	// CommandLine is the result-affecting base option list, either
	// user-supplied or defaulted by the host.
	CommandLine []string

	// CommandLineNonConfig is ignored by the configuration serializer
	// (things like --processes or --verbose that don't change output).
	CommandLineNonConfig []string

	// OutputFormat is the chosen output-format flag, e.g. "--json-pp".
	// It's always result-affecting.
	OutputFormat string

	// DebugActive indicates whether a debug verbosity level was
	// requested. When true, DebugCommandLine is appended.
	DebugActive bool

	// DebugCommandLine is result-affecting, but only included when
	// DebugActive is true.
	DebugCommandLine []string

	// DebugCommandLineNonConfig is ignored by the configuration
	// serializer, regardless of DebugActive.
	DebugCommandLineNonConfig []string
}

// ConfigurationKey implements the Configuration Serializer (4.I): a single
// whitespace-joined string of the result-affecting options only, suitable for
// use as a results-store key alongside the scanner name and resolved version.
// It's a stable function of configuration: same inputs always produce the
// same string, in the same order.
func ConfigurationKey(opts CommandLineOptions) string {
	parts := make([]string, 0, len(opts.CommandLine)+len(opts.DebugCommandLine)+1)
	parts = append(parts, opts.CommandLine...)
	if opts.OutputFormat != "" {
		parts = append(parts, opts.OutputFormat)
	}
	if opts.DebugActive {
		parts = append(parts, opts.DebugCommandLine...)
	}
	return strings.Join(parts, " ")
}
