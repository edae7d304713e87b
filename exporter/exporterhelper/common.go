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

// Package exporterhelper provides the factory and lifecycle plumbing shared by exporters.
package exporterhelper // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/exporter/exporterhelper"

import (
	"context"
	"time"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenthelper"
)

// TimeoutSettings for timeout. The timeout applies to individual export calls.
type TimeoutSettings struct {
	// Timeout is the timeout for every export call, zero disables it.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultTimeoutSettings returns the default settings for TimeoutSettings.
func DefaultTimeoutSettings() TimeoutSettings {
	return TimeoutSettings{}
}

// context derives the context of one export call from the caller context.
func (ts TimeoutSettings) context(parent context.Context) (context.Context, context.CancelFunc) {
	if ts.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, ts.Timeout)
}

// Option apply changes to baseExporter.
type Option func(*baseExporter)

// WithStart overrides the default Start function for an exporter.
// The default start function does nothing and always returns nil.
func WithStart(start componenthelper.StartFunc) Option {
	return func(o *baseExporter) {
		o.startFunc = start
	}
}

// WithShutdown overrides the default Shutdown function for an exporter.
// The default shutdown function does nothing and always returns nil.
func WithShutdown(shutdown componenthelper.ShutdownFunc) Option {
	return func(o *baseExporter) {
		o.shutdownFunc = shutdown
	}
}

// WithTimeout overrides the default TimeoutSettings for an exporter.
// The default TimeoutSettings disables the timeout.
func WithTimeout(timeoutSettings TimeoutSettings) Option {
	return func(o *baseExporter) {
		o.timeout = timeoutSettings
	}
}
