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

// Package bootstrap downloads and unpacks a scancode-toolkit release tarball
// into a local cache directory, so that invoker has something to exec. It
// does not attempt to build scancode-toolkit from source.
package bootstrap

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/ssgelm/cookiejarparser"

	"github.com/opencodescan/scanengine/util/errwrap"
)

// DefaultReleaseBaseURL is where scancode-toolkit release tarballs are
// published.
const DefaultReleaseBaseURL = "https://github.com/nexB/scancode-toolkit/releases/download"

// DefaultCacheDirName is appended to the user's home directory to build the
// default cache location, matching the teacher's XDG-ish convention of
// keeping downloaded artifacts out of the repository tree.
const DefaultCacheDirName = ".cache/scanengine/scancode-toolkit"

// Bootstrapper resolves and unpacks one scancode-toolkit release.
type Bootstrapper struct {
	Debug bool
	Logf  func(format string, v ...interface{})

	// Version is the release tag to fetch, eg "v32.1.0". Required.
	Version string

	// ReleaseBaseURL overrides DefaultReleaseBaseURL.
	ReleaseBaseURL string

	// CacheDir overrides the default ~/.cache location.
	CacheDir string

	// CookieJarPath, if set, loads a Netscape-format cookie jar so that
	// the download can authenticate against an internal mirror that
	// requires a session cookie.
	CookieJarPath string
}

func (obj *Bootstrapper) logf(format string, v ...interface{}) {
	if obj.Logf != nil {
		obj.Logf(format, v...)
	}
}

func (obj *Bootstrapper) releaseBaseURL() string {
	if obj.ReleaseBaseURL != "" {
		return obj.ReleaseBaseURL
	}
	return DefaultReleaseBaseURL
}

// cacheDir resolves the directory this version should be unpacked into.
func (obj *Bootstrapper) cacheDir() (string, error) {
	if obj.CacheDir != "" {
		return filepath.Join(obj.CacheDir, obj.Version), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errwrap.Wrapf(err, "error resolving home directory")
	}
	return filepath.Join(home, DefaultCacheDirName, obj.Version), nil
}

// archiveName is the conventional filename scancode-toolkit publishes its
// release tarball under.
func (obj *Bootstrapper) archiveName() string {
	return fmt.Sprintf("scancode-toolkit-%s.tar.gz", strings.TrimPrefix(obj.Version, "v"))
}

func (obj *Bootstrapper) archiveURL() string {
	return fmt.Sprintf("%s/%s/%s", obj.releaseBaseURL(), obj.Version, obj.archiveName())
}

// httpClient builds the client used for the download, wiring in a cookie jar
// if one was configured.
func (obj *Bootstrapper) httpClient() (*http.Client, error) {
	if obj.CookieJarPath == "" {
		return &http.Client{}, nil
	}
	jar, err := cookiejarparser.LoadCookieJarFile(obj.CookieJarPath)
	if err != nil {
		return nil, errwrap.Wrapf(err, "error loading cookie jar: %s", obj.CookieJarPath)
	}
	return &http.Client{Jar: jar}, nil
}

// Ensure makes sure this release is downloaded and unpacked, returning the
// path to the unpacked tree's root and the resolved version string. It's
// idempotent: a pre-existing cache directory is reused without re-downloading.
func (obj *Bootstrapper) Ensure(ctx context.Context) (string, string, error) {
	if obj.Version == "" {
		return "", "", fmt.Errorf("must specify a Version")
	}

	dir, err := obj.cacheDir()
	if err != nil {
		return "", "", err
	}

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		obj.logf("using cached scancode-toolkit %s at %s", obj.Version, dir)
		return dir, obj.Version, nil
	}

	client, err := obj.httpClient()
	if err != nil {
		return "", "", err
	}

	url := obj.archiveURL()
	obj.logf("downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", errwrap.Wrapf(err, "error building request for %s", url)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", "", errwrap.Wrapf(err, "error downloading %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("bad status code %d downloading %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", errwrap.Wrapf(err, "error creating cache dir %s", dir)
	}

	if err := untargz(resp.Body, dir); err != nil {
		// don't leave a half-unpacked cache dir around to be mistaken
		// for a complete one on the next run
		os.RemoveAll(dir)
		return "", "", errwrap.Wrapf(err, "error unpacking %s", url)
	}

	obj.logf("unpacked scancode-toolkit %s into %s", obj.Version, dir)
	return dir, obj.Version, nil
}

// untargz streams a gzip-compressed tar archive from r into dir. Only
// regular files and directories are extracted; anything else (symlinks,
// devices) is skipped.
func untargz(r io.Reader, dir string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errwrap.Wrapf(err, "error reading gzip stream")
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errwrap.Wrapf(err, "error reading tar stream")
		}

		// guard against path traversal from a malicious/corrupt archive
		target := filepath.Join(dir, filepath.Clean(header.Name))
		if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("tar entry escapes destination: %s", header.Name)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errwrap.Wrapf(err, "error creating dir %s", target)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errwrap.Wrapf(err, "error creating dir %s", filepath.Dir(target))
			}
			dest, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return errwrap.Wrapf(err, "error writing %s", target)
			}
			if _, err := io.Copy(dest, tr); err != nil {
				dest.Close()
				return errwrap.Wrapf(err, "error writing %s", target)
			}
			dest.Close()
		default:
			// skip symlinks and other special types
		}
	}
}
