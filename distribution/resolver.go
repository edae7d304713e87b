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

// ResourceResolver is the access context under which queue entries and packages are read.
type ResourceResolver interface {
	// UserID returns the principal the resolver acts for.
	UserID() string
	// CanRead reports whether content at path is visible to the principal.
	CanRead(path string) bool
}

type resolver struct {
	userID string
	roots  []string
}

// NewResolver returns a ResourceResolver for userID that can read under the given roots.
// Without roots every path is readable.
func NewResolver(userID string, roots ...string) ResourceResolver {
	return &resolver{userID: userID, roots: roots}
}

func (r *resolver) UserID() string {
	return r.userID
}

func (r *resolver) CanRead(path string) bool {
	if len(r.roots) == 0 {
		return true
	}
	for _, root := range r.roots {
		if isUnder(path, root) {
			return true
		}
	}
	return false
}
