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

package componenttest // import "github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/component/componenttest"

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"go.uber.org/multierr"

	"github.com/bhardwajrahul20/sling-org-apache-sling-distribution-core/config"
)

// Setting names are lower case words joined by "_" or ".", for example "drop.invalid.items".
var configFieldTagRegExp = regexp.MustCompile("^[a-z0-9][a-z0-9_.]*$")

var componentIDType = reflect.TypeOf(config.ComponentID{})

// CheckConfigStruct enforces that a component configuration can be read from yaml and
// properties sources: every public field carries a valid mapstructure tag, squashed
// fields are structs and no two fields of the same level (squashed ones included)
// read the same setting. Factories are expected to call it in their tests with the
// default configuration.
func CheckConfigStruct(cfg interface{}) error {
	t := reflect.TypeOf(cfg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("config must be a struct or a pointer to one, the passed object is a %s", t.Kind())
	}
	return checkLevel(t)
}

// checkLevel validates the settings of one nesting level of t.
func checkLevel(t reflect.Type) error {
	seen := map[string]string{}
	if errs := collectSettings(t, seen); errs != nil {
		return fmt.Errorf("type %q from package %q has invalid config settings: %w", t.Name(), t.PkgPath(), errs)
	}
	return nil
}

// collectSettings walks the fields of struct t, descending into squashed fields, and
// records the setting name owned by every field in seen.
func collectSettings(t reflect.Type, seen map[string]string) error {
	var errs error
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, squash, err := settingName(f)
		switch {
		case err != nil:
			errs = multierr.Append(errs, err)
		case squash:
			errs = multierr.Append(errs, collectSettings(indirect(f.Type), seen))
		case name == "":
		default:
			if owner, ok := seen[name]; ok {
				errs = multierr.Append(errs, fmt.Errorf("fields %q and %q both read setting %q", owner, f.Name, name))
				continue
			}
			seen[name] = f.Name
			errs = multierr.Append(errs, checkValue(f.Type))
		}
	}
	return errs
}

// settingName returns the setting read by f, or squash for embedded settings. An
// empty name means the field is not read from the configuration.
func settingName(f reflect.StructField) (name string, squash bool, err error) {
	tag, ok := f.Tag.Lookup("mapstructure")
	if !ok {
		switch f.Type.Kind() {
		case reflect.Interface, reflect.Chan, reflect.Func, reflect.Uintptr, reflect.UnsafePointer:
			return "", false, nil
		}
		if f.PkgPath == "" {
			return "", false, fmt.Errorf("mapstructure tag not present on field %q", f.Name)
		}
		return "", false, nil
	}
	if tag == "" {
		return "", false, fmt.Errorf("mapstructure tag on field %q is empty", f.Name)
	}

	parts := strings.Split(tag, ",")
	if parts[0] == "-" {
		return "", false, nil
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "squash":
			if indirect(f.Type).Kind() != reflect.Struct {
				return "", false, fmt.Errorf("attempt to squash non-struct type on field %q", f.Name)
			}
			squash = true
		case "remain":
			if f.Type.Kind() != reflect.Map && f.Type.Kind() != reflect.Interface {
				return "", false, fmt.Errorf(`attempt to use "remain" on non-map or interface type field %q`, f.Name)
			}
			return "", false, nil
		}
	}
	if squash {
		return "", true, nil
	}
	if parts[0] != "" && !configFieldTagRegExp.MatchString(parts[0]) {
		return "", false, fmt.Errorf("field %q has config tag %q which doesn't satisfy %q", f.Name, parts[0], configFieldTagRegExp.String())
	}
	return parts[0], false, nil
}

// checkValue descends into the nested configuration objects a field may hold.
func checkValue(t reflect.Type) error {
	t = indirect(t)
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return checkValue(t.Elem())
	case reflect.Struct:
		// Component ids are read from their string form.
		if t == componentIDType {
			return nil
		}
		return checkLevel(t)
	}
	return nil
}

func indirect(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}
