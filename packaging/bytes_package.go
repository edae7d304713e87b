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

package packaging // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
)

type bytesPackage struct {
	id   string
	typ  string
	data []byte
	info distribution.PackageInfo
}

// NewBytesPackage returns a distribution.Package holding its serialized form in memory.
func NewBytesPackage(id, typ string, data []byte, info distribution.PackageInfo) distribution.Package {
	return &bytesPackage{id: id, typ: typ, data: data, info: info}
}

func (p *bytesPackage) ID() string {
	return p.id
}

func (p *bytesPackage) Type() string {
	return p.typ
}

func (p *bytesPackage) Size() int64 {
	return int64(len(p.data))
}

func (p *bytesPackage) Info() *distribution.PackageInfo {
	return &p.info
}

func (p *bytesPackage) Open() (io.ReadCloser, error) {
	return ioutil.NopCloser(bytes.NewReader(p.data)), nil
}
