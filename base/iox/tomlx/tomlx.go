// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx reads and writes config structs as TOML files.
package tomlx

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"cogentcore.org/ladder/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// Open reads v from the given TOML file.
func Open(v any, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Read(v, bufio.NewReader(f)); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// Read decodes v from TOML. Keys that do not match a field of v
// are an error, so that typos in config files are reported.
func Read(v any, reader io.Reader) error {
	dec := toml.NewDecoder(reader)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	var sme *toml.StrictMissingError
	if errors.As(err, &sme) {
		return errors.New(sme.String())
	}
	return err
}

// Save writes v to the given file as TOML.
func Save(v any, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	if err := Write(v, bw); err != nil {
		return err
	}
	return bw.Flush()
}

// Write encodes v as TOML.
func Write(v any, writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(v)
}
