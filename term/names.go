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
	"fmt"
	"strings"
)

// CaptureNames returns the names of the capturing groups in t in the
// order a regex engine would number them (depth-first, left to
// right, outer groups before their contents). Anonymous groups
// contribute an empty string, so the slice index always matches the
// engine's group number minus one. Duplicate names are reported as
// often as they occur.
func CaptureNames(t Term) []string {
	if t == nil {
		return nil
	}
	w := &nameWalker{}
	Walk(w, t)
	return w.names
}

type nameWalker struct {
	names []string
}

func (w *nameWalker) Visit(t Term) Visitor {
	switch n := t.(type) {
	case *Group:
		w.names = append(w.names, n.Name)
	case *Wrap:
		w.names = append(w.names, n.Introduced...)
	}
	return w
}

// Names returns every group name mentioned anywhere in t: capturing
// group names, names introduced by wraps, and names referenced by
// backreferences. Fresh names generated during translation must
// avoid this set.
func Names(t Term) map[string]bool {
	names := make(map[string]bool)
	if t == nil {
		return names
	}
	Walk(&defWalker{names: names, refs: true}, t)
	return names
}

// defWalker collects group names; with refs set it also collects
// backreference targets.
type defWalker struct {
	names map[string]bool
	refs  bool
}

func (w *defWalker) Visit(t Term) Visitor {
	switch n := t.(type) {
	case *Group:
		if n.Name != "" {
			w.names[n.Name] = true
		}
	case *Wrap:
		for _, name := range n.Introduced {
			w.names[name] = true
		}
	case Ref:
		if w.refs {
			w.names[n.Name] = true
		}
	}
	return w
}

// CheckError describes a malformed construct found by Check.
type CheckError struct {
	// At is the offending node.
	At Term
	// Msg describes what is wrong with it.
	Msg string
}

// Error implements error. The node is rendered redacted so the
// message is safe to log.
func (c *CheckError) Error() string {
	return fmt.Sprintf("%s: %s", ToRedacted(c.At), c.Msg)
}

func errcheckf(at Term, f string, args ...interface{}) error {
	return &CheckError{At: at, Msg: fmt.Sprintf(f, args...)}
}

// Check walks t and confirms it is well-formed: repetition bounds
// are sane, group and reference names are valid identifiers, inline
// flag strings are syntactically acceptable, and every
// backreference points at a group name that exists somewhere in the
// tree. It returns the first problem found, or nil.
func Check(t Term) error {
	if t == nil {
		return nil
	}
	defined := make(map[string]bool)
	Walk(&defWalker{names: defined}, t)
	c := &checkwalk{defined: defined}
	Walk(c, t)
	return c.err
}

type checkwalk struct {
	defined map[string]bool
	err     error
}

// checker is implemented by terms with local well-formedness rules.
type checker interface {
	check() error
}

func (c *checkwalk) Visit(t Term) Visitor {
	if c.err != nil || t == nil {
		return nil
	}
	if n, ok := t.(checker); ok {
		if err := n.check(); err != nil {
			c.err = err
			return nil
		}
	}
	if n, ok := t.(Ref); ok && !c.defined[n.Name] {
		c.err = errcheckf(t, "backreference to undefined group %q", n.Name)
		return nil
	}
	return c
}

func (r *Rep) check() error {
	if r.Min < 0 {
		return errcheckf(r, "repetition lower bound %d is negative", r.Min)
	}
	if r.Max < Unbounded {
		return errcheckf(r, "repetition upper bound %d is negative", r.Max)
	}
	if r.Max != Unbounded && r.Max < r.Min {
		return errcheckf(r, "repetition bounds {%d,%d} are inverted", r.Min, r.Max)
	}
	if r.Mode < Greedy || r.Mode > Possessive {
		return errcheckf(r, "unknown repetition mode %d", int(r.Mode))
	}
	return nil
}

func (g *Group) check() error {
	if g.Name != "" && !ValidName(g.Name) {
		return errcheckf(g, "invalid group name %q", g.Name)
	}
	return nil
}

func (f Ref) check() error {
	if !ValidName(f.Name) {
		return errcheckf(f, "invalid backreference name %q", f.Name)
	}
	return nil
}

func (w *Wrap) check() error {
	for _, name := range w.Introduced {
		if !ValidName(name) {
			return errcheckf(w, "invalid introduced group name %q", name)
		}
	}
	return nil
}

func (c Class) check() error {
	if c.Tag < 0 || c.Tag >= maxClassTag {
		return errcheckf(c, "unknown class tag %d", int(c.Tag))
	}
	return nil
}

func (n *NonCap) check() error {
	if n.Flags == "" {
		return nil
	}
	if !validFlags(n.Flags) {
		return errcheckf(n, "invalid inline flags %q", n.Flags)
	}
	return nil
}

// ValidName reports whether name is acceptable as a capturing group
// name: an ASCII identifier starting with a letter or underscore.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// validFlags accepts flag strings of the form "on" or "on-off",
// where on and off are strings of known flag letters, at least one
// letter is present, and a dash is never dangling.
func validFlags(flags string) bool {
	on, off := flags, ""
	if i := strings.IndexByte(flags, '-'); i >= 0 {
		on, off = flags[:i], flags[i+1:]
		if off == "" || strings.IndexByte(off, '-') >= 0 {
			return false
		}
	}
	if on == "" && off == "" {
		return false
	}
	return flagLetters(on) && flagLetters(off)
}

func flagLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'i', 'm', 's', 'x', 'U':
		default:
			return false
		}
	}
	return true
}
