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
	"fmt"
	"strings"
)

// RequestType is the kind of a distribution request.
type RequestType string

const (
	// RequestTypeAdd distributes content to the target.
	RequestTypeAdd RequestType = "ADD"
	// RequestTypeDelete removes content from the target.
	RequestTypeDelete RequestType = "DELETE"
	// RequestTypePull asks a remote agent for the packages it queued.
	RequestTypePull RequestType = "PULL"
	// RequestTypeTest checks the distribution chain without moving content.
	RequestTypeTest RequestType = "TEST"
)

// ParseRequestType converts the textual representation of a request type, case insensitive.
func ParseRequestType(s string) (RequestType, error) {
	switch rt := RequestType(strings.ToUpper(strings.TrimSpace(s))); rt {
	case RequestTypeAdd, RequestTypeDelete, RequestTypePull, RequestTypeTest:
		return rt, nil
	}
	return "", fmt.Errorf("unknown request type %q", s)
}

// Request describes what is being distributed and scopes which queue entries an export applies to.
type Request struct {
	Type  RequestType
	Paths []string
	// Deep marks paths whose whole subtree is part of the request.
	Deep map[string]bool
}

// NewRequest creates a Request of the given type over the given paths.
func NewRequest(typ RequestType, paths ...string) *Request {
	return &Request{Type: typ, Paths: paths}
}

// IsDeep reports whether the subtree of the given path is included.
func (r *Request) IsDeep(path string) bool {
	return r.Deep[path]
}

// Covers reports whether content at any of the given paths falls within the scope of the request.
// A request without paths covers everything.
func (r *Request) Covers(paths []string) bool {
	if len(r.Paths) == 0 {
		return true
	}
	for _, requested := range r.Paths {
		for _, p := range paths {
			if isUnder(p, requested) {
				return true
			}
		}
	}
	return false
}

// isUnder reports whether path equals root or is a descendant of it.
func isUnder(path, root string) bool {
	if root == "/" || path == root {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(root, "/")+"/")
}
