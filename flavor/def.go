// Copyright 2023 The Rexterm Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package flavor

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"

	"sigs.k8s.io/yaml"
)

// Definition describes a flavor derived from a registered base:
// the base's rule table with a feature set adjusted by enabling or
// disabling named capabilities. Definitions let deployments pin the
// quirks of a particular engine build in a config file instead of
// code.
type Definition struct {
	// Name is the name of the derived flavor.
	Name string `json:"name"`
	// Base names the registered flavor to derive from.
	Base string `json:"base"`
	// Enable and Disable adjust the base's feature set; see
	// Feature for the accepted names.
	Enable  []string `json:"enable,omitempty"`
	Disable []string `json:"disable,omitempty"`
	// Strict escalates advisories into hard errors.
	Strict bool `json:"strict,omitempty"`
}

// limit the amount of stuff we try to parse as a definition
const maxDefSize = 1024 * 1024

// DecodeDefinition reads a definition in YAML (or JSON, which is a
// subset) from src.
func DecodeDefinition(src io.Reader) (*Definition, error) {
	buf, err := io.ReadAll(io.LimitReader(src, maxDefSize+1))
	if err != nil {
		return nil, err
	}
	if len(buf) > maxDefSize {
		return nil, fmt.Errorf("flavor: definition larger than %d bytes", maxDefSize)
	}
	d := new(Definition)
	if err := yaml.Unmarshal(buf, d); err != nil {
		return nil, fmt.Errorf("flavor: decoding definition: %w", err)
	}
	if d.Name == "" {
		return nil, fmt.Errorf("flavor: definition has no name")
	}
	if d.Base == "" {
		return nil, fmt.Errorf("flavor: definition %q has no base", d.Name)
	}
	return d, nil
}

// OpenDefinition opens path inside fsys and decodes the definition
// stored there.
func OpenDefinition(fsys fs.FS, path string) (*Definition, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeDefinition(f)
}

// Flavor resolves the definition against the flavor registry and
// returns the derived flavor.
func (d *Definition) Flavor() (*Flavor, error) {
	base := Lookup(d.Base)
	if base == nil {
		return nil, fmt.Errorf("flavor: unknown base flavor %q", d.Base)
	}
	feats := base.Features
	for _, name := range d.Enable {
		bit, ok := feature(name)
		if !ok {
			return nil, fmt.Errorf("flavor: unknown feature %q", name)
		}
		feats |= bit
	}
	for _, name := range d.Disable {
		bit, ok := feature(name)
		if !ok {
			return nil, fmt.Errorf("flavor: unknown feature %q", name)
		}
		feats &^= bit
	}
	f := New(d.Name, feats, base.rules...)
	if d.Strict {
		f = f.WithStrict(true)
	}
	return f, nil
}

// Equal reports whether the two definitions describe the same
// derived flavor.
func (d *Definition) Equal(x *Definition) bool {
	return bytes.Equal(d.Hash(), x.Hash())
}

// Hash returns a digest of the definition contents, suitable for
// change detection.
func (d *Definition) Hash() []byte {
	buf, err := json.Marshal(d)
	if err != nil {
		// Definition contains nothing unmarshalable
		panic(err)
	}
	sum := sha256.Sum256(buf)
	return sum[:]
}
