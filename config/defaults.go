// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SetFromDefaultTags sets the fields of the struct pointed to by obj
// from their `def:` struct field tags. Fields without the tag are left
// unchanged. It supports string, integer, float and bool fields.
func SetFromDefaultTags(obj any) error {
	val := reflect.ValueOf(obj)
	if val.Kind() != reflect.Pointer || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config.SetFromDefaultTags: need a non-nil struct pointer, got %T", obj)
	}
	val = val.Elem()
	typ := val.Type()
	var errs []error
	for i := range typ.NumField() {
		f := typ.Field(i)
		def, ok := f.Tag.Lookup("def")
		if !ok {
			continue
		}
		if err := setString(val.Field(i), def); err != nil {
			errs = append(errs, fmt.Errorf("config.SetFromDefaultTags: field %s from %q: %w", f.Name, def, err))
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func setString(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(v)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}

// Usage returns the `desc:` tag of the [Config] field whose toml key
// is key, for use as command line help. It is "" for unknown keys.
func Usage(key string) string {
	typ := reflect.TypeFor[Config]()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if name, _, _ := strings.Cut(f.Tag.Get("toml"), ","); name == key {
			return f.Tag.Get("desc")
		}
	}
	return ""
}
