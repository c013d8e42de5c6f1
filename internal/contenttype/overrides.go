// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contenttype

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Defaults is the built-in override table. Files and flags layered on top
// through Merge take precedence.
var Defaults = Table{
	"FeePayingSV.pdf": "Fee Paying Student Visa in NZ",
}

// LoadFile reads a flat YAML mapping of filename to label:
//
//	FeePayingSV.pdf: Fee Paying Student Visa in NZ
//	work_visa.pdf: Work Visa
//
// Keys keep their case, unlike viper keys, which is why overrides live in
// their own file. A missing file is an error wrapping fs.ErrNotExist; see
// LoadOptional for the default location.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides file %s: %w", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing overrides file %s: %w", path, err)
	}

	t := make(Table, len(raw))
	for name, label := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("overrides file %s: empty filename key", path)
		}
		t[name] = label
	}
	return t, nil
}

// LoadOptional is LoadFile for a path the user did not choose: a missing
// file yields an empty table.
func LoadOptional(path string) (Table, error) {
	t, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	return t, err
}

// Merge combines tables left to right; later tables win on conflicting keys.
// The inputs are not modified.
func Merge(tables ...Table) Table {
	out := make(Table)
	for _, t := range tables {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}
