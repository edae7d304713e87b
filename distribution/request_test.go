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

package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCovers(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		paths     []string
		covered   bool
	}{
		{name: "no paths", paths: []string{"/content/a"}, covered: true},
		{name: "same path", requested: []string{"/content/a"}, paths: []string{"/content/a"}, covered: true},
		{name: "descendant", requested: []string{"/content"}, paths: []string{"/content/a/b"}, covered: true},
		{name: "trailing slash", requested: []string{"/content/"}, paths: []string{"/content/a"}, covered: true},
		{name: "root", requested: []string{"/"}, paths: []string{"/apps"}, covered: true},
		{name: "sibling prefix", requested: []string{"/content/a"}, paths: []string{"/content/ab"}, covered: false},
		{name: "unrelated", requested: []string{"/content"}, paths: []string{"/apps/x"}, covered: false},
		{name: "any of many", requested: []string{"/apps", "/content"}, paths: []string{"/var", "/content/x"}, covered: true},
		{name: "empty item", requested: []string{"/content"}, paths: nil, covered: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequest(RequestTypePull, tt.requested...)
			assert.Equal(t, tt.covered, req.Covers(tt.paths))
		})
	}
}

func TestParseRequestType(t *testing.T) {
	rt, err := ParseRequestType(" add ")
	require.NoError(t, err)
	assert.Equal(t, RequestTypeAdd, rt)

	_, err = ParseRequestType("move")
	assert.Error(t, err)
}

func TestResolverCanRead(t *testing.T) {
	assert.True(t, NewResolver("admin").CanRead("/anything"))

	rr := NewResolver("author", "/content")
	assert.Equal(t, "author", rr.UserID())
	assert.True(t, rr.CanRead("/content/site"))
	assert.False(t, rr.CanRead("/apps"))
}

func TestPackageInfoMerge(t *testing.T) {
	info := PackageInfo{RequestType: RequestTypeAdd, Paths: []string{"/a"}, Origin: "builder"}
	info.Merge(PackageInfo{Queue: "default", Paths: []string{"/b"}, Properties: map[string]interface{}{"attempts": 2}})

	assert.Equal(t, RequestTypeAdd, info.RequestType)
	assert.Equal(t, []string{"/b"}, info.Paths)
	assert.Equal(t, "default", info.Queue)
	assert.Equal(t, "builder", info.Origin)
	assert.Equal(t, 2, info.Properties["attempts"])
}
