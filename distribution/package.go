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

package distribution // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"

import (
	"io"
	"time"
)

// Package is a materialized unit of content ready to be transported to a destination.
type Package interface {
	// ID returns the unique identifier of the package.
	ID() string
	// Type returns the type of the builder that produced the package.
	Type() string
	// Size returns the serialized size in bytes.
	Size() int64
	// Info returns the package metadata. Callers may update it.
	Info() *PackageInfo
	// Open returns a reader over the serialized package.
	Open() (io.ReadCloser, error)
}

// PackageInfo carries the metadata travelling with a package.
type PackageInfo struct {
	RequestType RequestType            `json:"requestType,omitempty"`
	Paths       []string               `json:"paths,omitempty"`
	Queue       string                 `json:"queue,omitempty"`
	Origin      string                 `json:"origin,omitempty"`
	CreatedAt   time.Time              `json:"createdAt,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
}

// Merge copies every non-zero value of other into the receiver.
func (pi *PackageInfo) Merge(other PackageInfo) {
	if other.RequestType != "" {
		pi.RequestType = other.RequestType
	}
	if len(other.Paths) > 0 {
		pi.Paths = append([]string(nil), other.Paths...)
	}
	if other.Queue != "" {
		pi.Queue = other.Queue
	}
	if other.Origin != "" {
		pi.Origin = other.Origin
	}
	if !other.CreatedAt.IsZero() {
		pi.CreatedAt = other.CreatedAt
	}
	if len(other.Properties) > 0 && pi.Properties == nil {
		pi.Properties = make(map[string]interface{}, len(other.Properties))
	}
	for k, v := range other.Properties {
		pi.Properties[k] = v
	}
}
