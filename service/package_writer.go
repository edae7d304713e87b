// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/service"

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// packageSummary is the printed form of a package.
type packageSummary struct {
	ID   string                    `json:"id"`
	Type string                    `json:"type"`
	Size int64                     `json:"size"`
	Info *distribution.PackageInfo `json:"info"`
}

func summarize(pkg distribution.Package) packageSummary {
	return packageSummary{ID: pkg.ID(), Type: pkg.Type(), Size: pkg.Size(), Info: pkg.Info()}
}

var _ packaging.Processor = (*packageWriter)(nil)

// packageWriter stores every processed package as <id>.pkg with its metadata in
// <id>.json. Without a directory packages are only counted.
type packageWriter struct {
	dir       string
	processed *atomic.Int64
	summaries []packageSummary
}

func newPackageWriter(dir string) (*packageWriter, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	return &packageWriter{dir: dir, processed: atomic.NewInt64(0), summaries: []packageSummary{}}, nil
}

func (pw *packageWriter) Process(_ context.Context, pkg distribution.Package) error {
	if pw.dir != "" {
		if err := pw.write(pkg); err != nil {
			return err
		}
	}
	pw.summaries = append(pw.summaries, summarize(pkg))
	pw.processed.Inc()
	return nil
}

func (pw *packageWriter) write(pkg distribution.Package) (err error) {
	if strings.ContainsAny(pkg.ID(), `/\`) || pkg.ID() == ".." {
		return fmt.Errorf("package id %q is not a valid file name", pkg.ID())
	}

	rc, err := pkg.Open()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, rc.Close()) }()

	f, err := os.Create(filepath.Join(pw.dir, pkg.ID()+".pkg"))
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, rc); err != nil {
		return multierr.Append(err, f.Close())
	}
	if err = f.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(summarize(pkg), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(pw.dir, pkg.ID()+".json"), data, 0o600)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
