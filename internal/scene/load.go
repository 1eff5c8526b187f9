/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format identifies a scene document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for unsupported document extensions.
var ErrUnknownFormat = errors.New("unknown scene format")

//go:embed scene.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ValidationError lists every schema violation of one document.
type ValidationError struct {
	Source   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scene %s is invalid: %s", e.Source, strings.Join(e.Problems, "; "))
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads, validates and decodes a scene document.
func Load(path string) (*Scene, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := parse(data, f, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Parse validates and decodes an in-memory document.
func Parse(data []byte, f Format) (*Scene, error) {
	return parse(data, f, string(f)+" document")
}

func parse(data []byte, f Format, source string) (*Scene, error) {
	doc, err := decodeGeneric(data, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	if err := validate(doc, source); err != nil {
		return nil, err
	}
	var s Scene
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	s.normalize()
	return &s, nil
}

func decodeGeneric(data []byte, f Format) (any, error) {
	var doc any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		m := map[string]any{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		doc = m
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return doc, nil
}

// Validate checks a decoded document (maps, slices, numbers, strings)
// against the scene schema.
func Validate(doc any) error {
	return validate(doc, "document")
}

func validate(doc any, source string) error {
	if doc == nil {
		return &ValidationError{Source: source, Problems: []string{"document is empty"}}
	}
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate %s: %w", source, err)
	}
	if res.Valid() {
		return nil
	}
	ve := &ValidationError{Source: source}
	for _, e := range res.Errors() {
		ve.Problems = append(ve.Problems, e.String())
	}
	return ve
}
