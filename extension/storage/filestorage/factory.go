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

package filestorage // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/storage/filestorage"

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/extension/extensionhelper"
)

const (
	// The value of extension "type" in configuration.
	typeStr config.Type = "file_storage"

	defaultCompactionThreshold = 1000
)

// NewFactory creates a factory for the file storage extension.
func NewFactory() component.ExtensionFactory {
	return extensionhelper.NewFactory(
		typeStr,
		createDefaultConfig,
		createExtension)
}

func createDefaultConfig() config.Extension {
	return &Config{
		ExtensionSettings:   config.NewExtensionSettings(config.NewID(typeStr)),
		Directory:           getDefaultDirectory(),
		CompactionThreshold: defaultCompactionThreshold,
		Sync:                true,
	}
}

func createExtension(
	_ context.Context,
	set component.ExtensionCreateSettings,
	cfg config.Extension,
) (component.Extension, error) {
	return newLocalFileStorage(set.Logger, cfg.(*Config))
}

func getDefaultDirectory() string {
	directory := "/var/lib/pkgdist/file_storage"
	if runtime.GOOS == "windows" {
		directory = filepath.Join(os.Getenv("ProgramData"), "Pkgdist", "FileStorage")
	}
	return directory
}
