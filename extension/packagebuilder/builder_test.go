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

package packagebuilder

import (
	"context"
	"errors"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/distribution"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage/storagetest"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/packaging"
)

var storageID = config.NewIDWithName("file_storage", "manifests")

func newTestProvider(t *testing.T, withStorage bool, types ...string) *builderProvider {
	cfg := createDefaultConfig().(*Config)
	if len(types) > 0 {
		cfg.Types = types
	}
	host := componenttest.NewNopHost()
	if withStorage {
		cfg.Storage = storageID
		host = componenttest.NewExtensionsHost(map[config.ComponentID]component.Extension{
			storageID: storagetest.NewMemoryExtension(nil),
		})
	}
	bp, err := newBuilderProvider(zap.NewNop(), cfg)
	require.NoError(t, err)
	require.NoError(t, bp.Start(context.Background(), host))
	t.Cleanup(func() {
		assert.NoError(t, bp.Shutdown(context.Background()))
	})
	return bp
}

func TestBuilder_CreateAndGet(t *testing.T) {
	for _, withStorage := range []bool{false, true} {
		bp := newTestProvider(t, withStorage)
		b, ok := bp.Builder(DefaultPackageType)
		require.True(t, ok)
		assert.Equal(t, DefaultPackageType, b.Type())

		ctx := context.Background()
		rr := distribution.NewResolver("author", "/content")
		created, err := b.CreatePackage(ctx, rr, distribution.NewRequest(distribution.RequestTypeAdd, "/content/a", "/content/b"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID())
		assert.Equal(t, "author", created.Info().Origin)

		got, err := b.GetPackage(ctx, rr, created.ID())
		require.NoError(t, err)
		assert.Equal(t, created.ID(), got.ID())
		assert.Equal(t, DefaultPackageType, got.Type())
		assert.Equal(t, distribution.RequestTypeAdd, got.Info().RequestType)
		assert.Equal(t, []string{"/content/a", "/content/b"}, got.Info().Paths)
		assert.Equal(t, created.Size(), got.Size())

		rc, err := got.Open()
		require.NoError(t, err)
		content, err := ioutil.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Contains(t, string(content), created.ID())
	}
}

func TestBuilder_Errors(t *testing.T) {
	bp := newTestProvider(t, true, "vlt", "json")
	vlt, ok := bp.Builder("vlt")
	require.True(t, ok)
	jsonBuilder, ok := bp.Builder("json")
	require.True(t, ok)
	_, ok = bp.Builder("zip")
	assert.False(t, ok)

	ctx := context.Background()
	admin := distribution.NewResolver("admin")
	pkg, err := vlt.CreatePackage(ctx, admin, distribution.NewRequest(distribution.RequestTypeAdd, "/apps/x"))
	require.NoError(t, err)

	_, err = vlt.CreatePackage(ctx, distribution.NewResolver("author", "/content"), distribution.NewRequest(distribution.RequestTypeAdd, "/apps/x"))
	assert.Equal(t, errNotReadable, err)

	_, err = vlt.CreatePackage(ctx, nil, distribution.NewRequest(distribution.RequestTypeAdd))
	assert.Error(t, err)

	_, err = vlt.GetPackage(ctx, admin, "missing")
	assert.True(t, errors.Is(err, errPackageNotFound))

	_, err = vlt.GetPackage(ctx, distribution.NewResolver("author", "/content"), pkg.ID())
	assert.Equal(t, errNotReadable, err)

	// each type has its own client
	_, err = jsonBuilder.GetPackage(ctx, admin, pkg.ID())
	assert.True(t, errors.Is(err, errPackageNotFound))

	pb := vlt.(*packageBuilder)
	require.NoError(t, pb.client.Set(ctx, "corrupted", []byte{0xff, 0x01}))
	_, err = vlt.GetPackage(ctx, admin, "corrupted")
	assert.Contains(t, err.Error(), "corrupted package")
}

func TestBuilder_MissingStorage(t *testing.T) {
	cfg := createDefaultConfig().(*Config)
	cfg.Storage = storageID
	bp, err := newBuilderProvider(zap.NewNop(), cfg)
	require.NoError(t, err)

	err = bp.Start(context.Background(), componenttest.NewNopHost())
	assert.True(t, distribution.IsConfiguration(err))
	_, ok := bp.Builder(DefaultPackageType)
	assert.False(t, ok)
}

func TestBuilder_ProviderContract(t *testing.T) {
	var provider packaging.BuilderProvider = newTestProvider(t, false)
	b, ok := provider.Builder(DefaultPackageType)
	require.True(t, ok)
	assert.NotNil(t, b)
}
