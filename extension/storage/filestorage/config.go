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
	"errors"
	"fmt"
	"os"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// Config defines configuration for file storage extension.
type Config struct {
	config.ExtensionSettings `mapstructure:",squash"`

	// Directory holds one log per storage client.
	Directory string `mapstructure:"directory"`

	// CompactionThreshold is the number of records a client log may hold before it is
	// rewritten as a single snapshot record.
	CompactionThreshold int `mapstructure:"compaction.threshold"`

	// Sync makes every write wait for the log to be flushed to disk.
	Sync bool `mapstructure:"sync"`
}

var _ config.Extension = (*Config)(nil)

// Validate checks that the directory exists and the compaction threshold is positive.
func (cfg *Config) Validate() error {
	info, err := os.Stat(cfg.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory must exist: %v", err)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", cfg.Directory)
	}
	if cfg.CompactionThreshold <= 0 {
		return errors.New("compaction.threshold must be positive")
	}
	return nil
}
