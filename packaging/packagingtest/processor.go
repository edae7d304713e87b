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

package packagingtest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging/packagingtest"

import (
	"context"
	"sync"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

// RecordingProcessor records the ids of the packages it accepts.
// Packages whose id has a configured error are declined with that error.
type RecordingProcessor struct {
	mu        sync.Mutex
	processed []string
	errs      map[string]error
	hook      func(pkg distribution.Package)
}

var _ packaging.Processor = (*RecordingProcessor)(nil)

// NewRecordingProcessor returns a processor accepting every package.
func NewRecordingProcessor() *RecordingProcessor {
	return &RecordingProcessor{errs: map[string]error{}}
}

// FailOn makes the processor decline the package with the given id.
func (rp *RecordingProcessor) FailOn(id string, err error) *RecordingProcessor {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	rp.errs[id] = err
	return rp
}

// OnProcess registers a function called for every package before it is accepted or declined.
func (rp *RecordingProcessor) OnProcess(hook func(pkg distribution.Package)) *RecordingProcessor {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	rp.hook = hook
	return rp
}

// Process implements packaging.Processor.
func (rp *RecordingProcessor) Process(_ context.Context, pkg distribution.Package) error {
	rp.mu.Lock()
	hook := rp.hook
	err := rp.errs[pkg.ID()]
	rp.mu.Unlock()

	if hook != nil {
		hook(pkg)
	}
	if err != nil {
		return err
	}

	rp.mu.Lock()
	defer rp.mu.Unlock()
	rp.processed = append(rp.processed, pkg.ID())
	return nil
}

// Processed returns the ids of accepted packages in processing order.
func (rp *RecordingProcessor) Processed() []string {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return append([]string(nil), rp.processed...)
}
