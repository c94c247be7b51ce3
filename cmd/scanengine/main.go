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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	validator "github.com/go-playground/validator/v10"
	homedir "github.com/mitchellh/go-homedir"
	cli "github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/opencodescan/scanengine/bootstrap"
	"github.com/opencodescan/scanengine/invoker"
	"github.com/opencodescan/scanengine/scancode"
	"github.com/opencodescan/scanengine/store"
	"github.com/opencodescan/scanengine/util/ansi"
	"github.com/opencodescan/scanengine/util/errwrap"
	"github.com/opencodescan/scanengine/util/safepath"
)

const (
	// Program is this binary's name, used to build the default config path.
	Program = "scanengine"

	// ConfigFileName is the name of the config file resolved under the
	// user's home directory when --config-path isn't given.
	ConfigFileName = "config.json"
)

func main() {
	debug := false
	a := &ansi.Logf{
		Prefix:       "main: ",
		Ellipsis:     "...",
		Enable:       true,
		Prefixes:     []string{"running: ", "downloading "},
		FailPrefixes: []string{"failed: "},
	}
	logf := a.Init()

	if err := run(os.Args, &debug, logf); err != nil {
		if debug {
			logf("failed: %+v", err)
		} else {
			logf("failed: %+v", errwrap.Cause(err))
		}
		os.Exit(1)
	}
}

// Config mirrors the subset of command-line options that can be set from a
// JSON config file living in the user's home directory. Pointer fields let
// us tell "unset" apart from "set to the zero value", same as a command-line
// flag's IsSet check.
type Config struct {
	ScancodeVersion *string `json:"scancode-version"`
	OutputPath      *string `json:"output-path"`
	S3Bucket        *string `json:"s3-bucket"`
	Region          *string `json:"region"`
	ProximityTol    *int    `json:"proximity-tolerance"`
	TimeoutSeconds  *int    `json:"timeout-seconds"`
}

// getConfig loads the config file data into a struct. An empty configPath
// falls back to ~/.config/scanengine/config.json, resolved via go-homedir so
// this also works in environments where $HOME isn't set the usual way.
func getConfig(configPath string) (*Config, error) {
	if configPath == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, errwrap.Wrapf(err, "error finding home directory")
		}
		configPath = filepath.Clean(filepath.Join(home, ".config", Program, ConfigFileName))
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, nil // no config file is not an error
	}
	if err != nil {
		return nil, errwrap.Wrapf(err, "error reading config file")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty config file: %s", configPath)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errwrap.Wrapf(err, "error decoding config file: %s", configPath)
	}
	return &cfg, nil
}

func run(args []string, debug *bool, logf func(format string, v ...interface{})) error {
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	app := &cli.App{
		Name:  Program,
		Usage: "run scancode against a file or directory and report licenses and copyrights",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-path"},
			&cli.StringFlag{Name: "scancode-path", Usage: "override the scancode executable"},
			&cli.StringFlag{Name: "scancode-version", Usage: "scancode-toolkit release to bootstrap, eg v32.1.0"},
			&cli.StringFlag{Name: "output-path", Usage: "write the summary here instead of stdout, - means stdout"},
			&cli.StringFlag{Name: "s3-bucket", Usage: "also archive the full result to this S3 bucket"},
			&cli.StringFlag{Name: "region", Usage: "AWS region for --s3-bucket"},
			&cli.IntFlag{Name: "proximity-tolerance", Usage: "line distance for copyright/license association"},
			&cli.IntFlag{Name: "timeout-seconds", Usage: "duration scancode timeout errors are compared against"},
			&cli.BoolFlag{Name: "dir", Usage: "treat the path argument as a directory"},
			&cli.BoolFlag{Name: "debug"},
		},
		Action: func(c *cli.Context) error {
			*debug = c.Bool("debug")

			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one path argument")
			}

			cfg, err := getConfig(c.String("config-path"))
			if err != nil {
				return err
			}

			outputPath := ""
			s3Bucket := ""
			region := store.DefaultRegion
			scancodeVersion := ""
			opts := scancode.Options{}

			if cfg != nil {
				if cfg.OutputPath != nil {
					outputPath = *cfg.OutputPath
				}
				if cfg.S3Bucket != nil {
					s3Bucket = *cfg.S3Bucket
				}
				if cfg.Region != nil {
					region = *cfg.Region
				}
				if cfg.ScancodeVersion != nil {
					scancodeVersion = *cfg.ScancodeVersion
				}
				if cfg.ProximityTol != nil {
					opts.ProximityTolerance = *cfg.ProximityTol
				}
				if cfg.TimeoutSeconds != nil {
					opts.TimeoutSeconds = *cfg.TimeoutSeconds
				}
			}

			if c.IsSet("output-path") {
				outputPath = c.String("output-path")
			}
			if c.IsSet("s3-bucket") {
				s3Bucket = c.String("s3-bucket")
			}
			if c.IsSet("region") {
				region = c.String("region")
			}
			if c.IsSet("scancode-version") {
				scancodeVersion = c.String("scancode-version")
			}
			if c.IsSet("proximity-tolerance") {
				opts.ProximityTolerance = c.Int("proximity-tolerance")
			}
			if c.IsSet("timeout-seconds") {
				opts.TimeoutSeconds = c.Int("timeout-seconds")
			}

			if err := validator.New().Struct(opts); err != nil {
				return errwrap.Wrapf(err, "invalid options")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			scancodeProgram := c.String("scancode-path")
			if scancodeProgram == "" && scancodeVersion != "" {
				b := &bootstrap.Bootstrapper{
					Debug:   *debug,
					Logf:    logf,
					Version: scancodeVersion,
				}
				dir, _, err := b.Ensure(ctx)
				if err != nil {
					return errwrap.Wrapf(err, "error bootstrapping scancode-toolkit")
				}
				scancodeProgram = filepath.Join(dir, "scancode")
			}

			var path safepath.Path
			if c.Bool("dir") {
				path, err = safepath.ParseDir(c.Args().Get(0))
			} else {
				path, err = safepath.ParseFile(c.Args().Get(0))
			}
			if err != nil {
				return errwrap.Wrapf(err, "invalid path argument")
			}

			inv := &invoker.Invoker{
				Debug:   *debug,
				Logf:    logf,
				Program: scancodeProgram,
				Options: opts,
			}

			result, err := inv.Invoke(ctx, path)
			if err != nil {
				return err
			}
			if !result.Success {
				logf("scan reported failures that were not classified as benign: %v", result.ExitErr)
			}

			data, err := json.MarshalIndent(result.ScanResult.Summary, "", "  ")
			if err != nil {
				return errwrap.Wrapf(err, "error marshalling summary")
			}

			if s3Bucket != "" {
				s := &store.S3Store{Debug: *debug, Logf: logf, Region: region, BucketName: s3Bucket, CreateBucket: true}
				configKey := scancode.ConfigurationKey(scancode.CommandLineOptions{
					CommandLine:  []string{"--license", "--copyright", "--full-root"},
					OutputFormat: "--json-pp",
				})
				url, err := s.Put(ctx, result.ScanResult.ScannerDetails.Name, configKey, result.ScanResult)
				if err != nil {
					logf("could not archive result to s3: %+v", err)
				} else {
					fmt.Printf("s3 result: %s\n", url)
				}
			}

			if outputPath == "" || outputPath == "-" {
				fmt.Println(string(data))
			} else if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				logf("could not write output file: %+v", err)
			}

			if !result.Success {
				return errwrap.Wrapf(result.ExitErr, "scan did not succeed")
			}
			return nil
		},
	}

	return app.Run(args)
}
