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

package config // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

const (
	// KeyDelimiter is used as the default key delimiter in the default koanf instance.
	// A double colon keeps dotted setting names such as "drop.invalid.items" as single keys.
	KeyDelimiter = "::"
)

var componentIDType = reflect.TypeOf(ComponentID{})

// NewMap creates a new empty config.Map instance.
func NewMap() *Map {
	return &Map{k: koanf.New(KeyDelimiter)}
}

// NewMapFromStringMap creates a config.Map from a map[string]interface{}.
func NewMapFromStringMap(data map[string]interface{}) *Map {
	p := NewMap()
	// Cannot return error because the koanf instance is empty.
	_ = p.k.Load(confmap.Provider(data, KeyDelimiter), nil)
	return p
}

// Map represents the raw configuration map for the service or for a single component.
type Map struct {
	k *koanf.Koanf
}

// AllKeys returns all keys holding a value, regardless of where they are set.
// Nested keys are returned with a KeyDelimiter separator.
func (l *Map) AllKeys() []string {
	return l.k.Keys()
}

// Unmarshal unmarshals the config into a struct.
// Make sure to call mapstructure tags on the struct fields.
// String values are coerced to the field kind (for example "true" to a bool field),
// which is how flat key/value settings become typed configuration.
func (l *Map) Unmarshal(rawVal interface{}) error {
	decoder, err := mapstructure.NewDecoder(decoderConfig(rawVal, false))
	if err != nil {
		return err
	}
	return decoder.Decode(l.ToStringMap())
}

// UnmarshalExact unmarshals the config into a struct, erroring if a field is nonexistent.
func (l *Map) UnmarshalExact(rawVal interface{}) error {
	decoder, err := mapstructure.NewDecoder(decoderConfig(rawVal, true))
	if err != nil {
		return err
	}
	return decoder.Decode(l.ToStringMap())
}

// Get can retrieve any value given the key to use.
func (l *Map) Get(key string) interface{} {
	return l.k.Get(key)
}

// Set sets the value for the key.
func (l *Map) Set(key string, value interface{}) {
	// koanf doesn't offer a direct setting mechanism so merging is required.
	merged := koanf.New(KeyDelimiter)
	_ = merged.Load(confmap.Provider(map[string]interface{}{key: value}, KeyDelimiter), nil)
	_ = l.k.Merge(merged)
}

// IsSet checks to see if the key has been set in any of the data locations.
func (l *Map) IsSet(key string) bool {
	return l.k.Exists(key)
}

// Merge merges the input given configuration into the existing config.
// Note that the given map may override existing properties.
func (l *Map) Merge(in *Map) error {
	return l.k.Merge(in.k)
}

// Sub returns new Map instance representing a sub tree of this instance.
// It returns an error is the sub-config is not a map (use Get()) and an empty Map if
// none exists.
func (l *Map) Sub(key string) (*Map, error) {
	data := l.Get(key)
	if data == nil {
		return NewMap(), nil
	}

	if reflect.TypeOf(data).Kind() == reflect.Map {
		return NewMapFromStringMap(cast.ToStringMap(data)), nil
	}

	return nil, fmt.Errorf("unexpected sub-config value kind for key:%s value:%v kind:%v)", key, data, reflect.TypeOf(data).Kind())
}

// ToStringMap creates a map[string]interface{} from a Map.
func (l *Map) ToStringMap() map[string]interface{} {
	return maps.Unflatten(l.k.All(), KeyDelimiter)
}

// decoderConfig returns a default mapstructure.DecoderConfig capable of parsing time.Duration,
// component identities and loosely typed scalar values.
func decoderConfig(result interface{}, errorUnused bool) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		Result:           result,
		Metadata:         nil,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      errorUnused,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			componentIDHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
			castScalarHookFunc(),
		),
	}
}

// componentIDHookFunc decodes "type[/name]" strings into ComponentID values.
func componentIDHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != componentIDType || from.Kind() != reflect.String {
			return data, nil
		}
		str := data.(string)
		if str == "" {
			return ComponentID{}, nil
		}
		return NewIDFromString(str)
	}
}

// castScalarHookFunc coerces scalar values into bool and string fields the same way
// key/value property sources are read: "true"/"1" become true, numbers become strings.
func castScalarHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() == to.Kind() {
			return data, nil
		}
		switch to.Kind() {
		case reflect.Bool:
			if str, ok := data.(string); ok && strings.TrimSpace(str) == "" {
				return false, nil
			}
			return cast.ToBoolE(data)
		case reflect.String:
			switch from.Kind() {
			case reflect.Map, reflect.Slice, reflect.Struct:
				return data, nil
			}
			return cast.ToStringE(data)
		}
		return data, nil
	}
}
