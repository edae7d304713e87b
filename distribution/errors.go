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
	"errors"
)

// ErrorKind classifies a distribution failure.
type ErrorKind int

const (
	// KindUnknown is reported for errors that were not classified.
	KindUnknown ErrorKind = iota
	// KindConfiguration is an unresolved or invalid collaborator, fatal at construction.
	KindConfiguration
	// KindInvalidItem is a queue entry that cannot be materialized into a package.
	KindInvalidItem
	// KindProcessor is a processor that declined a valid package.
	KindProcessor
	// KindQueue is a failure of the queue store.
	KindQueue
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInvalidItem:
		return "invalid_item"
	case KindProcessor:
		return "processor"
	case KindQueue:
		return "queue"
	}
	return "unknown"
}

// Error is the error reported by distribution operations.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError returns an error for a missing or invalid collaborator.
func NewConfigurationError(msg string, err error) error {
	return &Error{Kind: KindConfiguration, Msg: msg, Err: err}
}

// NewInvalidItemError returns an error for a queue entry that cannot be materialized.
func NewInvalidItemError(msg string, err error) error {
	return &Error{Kind: KindInvalidItem, Msg: msg, Err: err}
}

// NewProcessorError returns an error for a package the processor did not accept.
func NewProcessorError(msg string, err error) error {
	return &Error{Kind: KindProcessor, Msg: msg, Err: err}
}

// NewQueueError returns an error raised by the queue store.
func NewQueueError(msg string, err error) error {
	return &Error{Kind: KindQueue, Msg: msg, Err: err}
}

// KindOf returns the kind of the first distribution Error found in the chain of err.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsInvalidItem reports whether err was caused by an invalid queue entry.
func IsInvalidItem(err error) bool {
	return KindOf(err) == KindInvalidItem
}

// IsConfiguration reports whether err was caused by a configuration problem.
func IsConfiguration(err error) bool {
	return KindOf(err) == KindConfiguration
}

// fatal is an error that stops an export cycle.
type fatal struct {
	err error
}

// NewFatal wraps an error to indicate that the current export cycle must stop.
// Processors return it when no further package should be handed to them.
func NewFatal(err error) error {
	return fatal{err: err}
}

func (f fatal) Error() string {
	return "fatal error: " + f.err.Error()
}

// Unwrap returns the wrapped error for functions Is and As in standard package errors.
func (f fatal) Unwrap() error {
	return f.err
}

// IsFatal checks if an error was wrapped with the NewFatal function.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.As(err, &fatal{})
}
