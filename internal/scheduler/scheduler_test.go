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

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
)

var fastRetry = RetrySettings{
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
}

func TestNew_Errors(t *testing.T) {
	_, err := New(zap.NewNop(), 0, DefaultRetrySettings(), func(context.Context) error { return nil })
	assert.Error(t, err)
	_, err = New(zap.NewNop(), time.Second, DefaultRetrySettings(), nil)
	assert.Error(t, err)
}

func TestRun_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, err := New(zap.NewNop(), time.Millisecond, fastRetry, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	done := make(chan error)
	go func() { done <- s.Run(ctx) }()
	assert.Eventually(t, func() bool { return s.Cycles() >= 3 }, time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
	assert.Zero(t, s.Failures())
}

func TestRun_RetriesFailedCycles(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	calls := atomic.NewInt64(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// cycles only fail for a while, waiting an hour between successful ones
	s, err := New(zap.New(core), time.Hour, fastRetry, func(context.Context) error {
		if calls.Inc() <= 3 {
			return distribution.NewQueueError("store unavailable", nil)
		}
		return nil
	})
	require.NoError(t, err)

	go func() { _ = s.Run(ctx) }()
	assert.Eventually(t, func() bool { return calls.Load() == 4 }, time.Second, time.Millisecond)
	assert.Equal(t, int64(3), s.Failures())
	assert.Equal(t, 3, logs.FilterMessage("Export cycle failed, retrying").Len())
}

func TestRun_ReturnsFatalErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "fatal", err: distribution.NewFatal(errors.New("agent stopped"))},
		{name: "configuration", err: distribution.NewConfigurationError("no agent", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(zap.NewNop(), time.Millisecond, fastRetry, func(context.Context) error {
				return tt.err
			})
			require.NoError(t, err)
			assert.Equal(t, tt.err, s.Run(context.Background()))
			assert.Equal(t, int64(1), s.Cycles())
		})
	}
}
