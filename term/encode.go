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

package term

import (
	"encoding/json"
	"fmt"
)

// envelope is the wire form of a term. One envelope shape covers
// every variant; fields that do not apply to a variant are simply
// absent from its JSON.
type envelope struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	Unit       bool        `json:"unit,omitempty"`
	Class      string      `json:"class,omitempty"`
	Terms      []*envelope `json:"terms,omitempty"`
	Body       *envelope   `json:"body,omitempty"`
	Protected  bool        `json:"protected,omitempty"`
	Min        int         `json:"min,omitempty"`
	Max        int         `json:"max,omitempty"`
	Mode       string      `json:"mode,omitempty"`
	Behind     bool        `json:"behind,omitempty"`
	Negated    bool        `json:"negated,omitempty"`
	Name       string      `json:"name,omitempty"`
	Flags      string      `json:"flags,omitempty"`
	Prefix     string      `json:"prefix,omitempty"`
	Suffix     string      `json:"suffix,omitempty"`
	Introduced []string    `json:"introduced,omitempty"`
}

// Encode returns the JSON encoding of t. The encoding is stable
// across versions and round-trips through Decode.
func Encode(t Term) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("term: cannot encode nil term")
	}
	return json.Marshal(t.enc())
}

// Decode parses a term from its JSON encoding.
func Decode(msg []byte) (Term, error) {
	var e envelope
	if err := json.Unmarshal(msg, &e); err != nil {
		return nil, fmt.Errorf("term: decoding: %w", err)
	}
	return decode(&e)
}

func encTerm(t Term) *envelope {
	if t == nil {
		return nil
	}
	return t.enc()
}

func encTerms(terms []Term) []*envelope {
	if terms == nil {
		return nil
	}
	out := make([]*envelope, len(terms))
	for i := range terms {
		out[i] = encTerm(terms[i])
	}
	return out
}

func (l Lit) enc() *envelope {
	return &envelope{Type: "lit", Text: l.Text, Unit: l.Unit}
}

func (c Class) enc() *envelope {
	return &envelope{Type: "class", Class: c.Tag.String()}
}

func (c *Concat) enc() *envelope {
	return &envelope{
		Type:      "concat",
		Terms:     encTerms(c.Terms),
		Protected: c.Protected,
	}
}

func (a *Alt) enc() *envelope {
	return &envelope{Type: "alt", Terms: encTerms(a.Terms)}
}

func (r *Rep) enc() *envelope {
	e := &envelope{
		Type: "rep",
		Body: encTerm(r.Body),
		Min:  r.Min,
		Max:  r.Max,
	}
	if r.Mode != Greedy {
		e.Mode = r.Mode.String()
	}
	return e
}

func (l *Look) enc() *envelope {
	return &envelope{
		Type:    "look",
		Body:    encTerm(l.Body),
		Behind:  l.Behind,
		Negated: l.Negated,
	}
}

func (g *Group) enc() *envelope {
	return &envelope{Type: "group", Name: g.Name, Body: encTerm(g.Body)}
}

func (n *NonCap) enc() *envelope {
	return &envelope{Type: "noncap", Body: encTerm(n.Body), Flags: n.Flags}
}

func (a *Atomic) enc() *envelope {
	return &envelope{Type: "atomic", Body: encTerm(a.Body)}
}

func (f Ref) enc() *envelope {
	return &envelope{Type: "ref", Name: f.Name}
}

func (w *Wrap) enc() *envelope {
	return &envelope{
		Type:       "wrap",
		Body:       encTerm(w.Body),
		Prefix:     w.Prefix,
		Suffix:     w.Suffix,
		Introduced: w.Introduced,
	}
}

func decode(e *envelope) (Term, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Type {
	case "lit":
		return Lit{Text: e.Text, Unit: e.Unit}, nil
	case "class":
		tag, ok := name2class(e.Class)
		if !ok {
			return nil, fmt.Errorf("term: unknown class %q", e.Class)
		}
		return Class{Tag: tag}, nil
	case "concat":
		terms, err := decodeTerms(e.Terms)
		if err != nil {
			return nil, err
		}
		return &Concat{Terms: terms, Protected: e.Protected}, nil
	case "alt":
		terms, err := decodeTerms(e.Terms)
		if err != nil {
			return nil, err
		}
		return &Alt{Terms: terms}, nil
	case "rep":
		body, err := decode(e.Body)
		if err != nil {
			return nil, err
		}
		mode, err := decodeMode(e.Mode)
		if err != nil {
			return nil, err
		}
		return &Rep{Body: body, Min: e.Min, Max: e.Max, Mode: mode}, nil
	case "look":
		body, err := decode(e.Body)
		if err != nil {
			return nil, err
		}
		return &Look{Body: body, Behind: e.Behind, Negated: e.Negated}, nil
	case "group":
		body, err := decode(e.Body)
		if err != nil {
			return nil, err
		}
		return &Group{Name: e.Name, Body: body}, nil
	case "noncap":
		body, err := decode(e.Body)
		if err != nil {
			return nil, err
		}
		return &NonCap{Body: body, Flags: e.Flags}, nil
	case "atomic":
		body, err := decode(e.Body)
		if err != nil {
			return nil, err
		}
		return &Atomic{Body: body}, nil
	case "ref":
		return Ref{Name: e.Name}, nil
	case "wrap":
		body, err := decode(e.Body)
		if err != nil {
			return nil, err
		}
		return &Wrap{
			Body:       body,
			Prefix:     e.Prefix,
			Suffix:     e.Suffix,
			Introduced: e.Introduced,
		}, nil
	case "":
		return nil, fmt.Errorf("term: missing term type")
	default:
		return nil, fmt.Errorf("term: unknown term type %q", e.Type)
	}
}

func decodeTerms(envs []*envelope) ([]Term, error) {
	if envs == nil {
		return nil, nil
	}
	out := make([]Term, len(envs))
	for i := range envs {
		t, err := decode(envs[i])
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func decodeMode(name string) (RepMode, error) {
	switch name {
	case "":
		return Greedy, nil
	case "reluctant":
		return Reluctant, nil
	case "possessive":
		return Possessive, nil
	default:
		return 0, fmt.Errorf("term: unknown repetition mode %q", name)
	}
}

// Copy returns a deep copy of t. Interior nodes are fresh
// allocations; the copy shares no mutable state with the original.
func Copy(t Term) Term {
	if t == nil {
		return nil
	}
	return Rewrite(copier{}, t)
}

type copier struct{}

func (copier) Rewrite(t Term) Term  { return t }
func (copier) Walk(t Term) Rewriter { return copier{} }
