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

// Package componenterror provides helper functions to create and process
// component lifecycle errors.
package componenterror // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenterror"

import (
	"errors"
)

var (
	// ErrNotStarted indicates a call on a component that was not started yet.
	ErrNotStarted = errors.New("not started")

	// ErrNilProcessor indicates an error on nil package processor.
	ErrNilProcessor = errors.New("nil package processor")
)
