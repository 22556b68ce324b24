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
	"strconv"
	"strings"
)

// ClassTag identifies a well-known character class or position
// anchor. Unlike a Lit carrying the same characters, a Class keeps
// its identity, so flavors can recognize it and substitute whatever
// their dialect uses for the concept.
type ClassTag int

const (
	// Word matches a word character (\w).
	Word ClassTag = iota
	// NotWord matches a non-word character (\W).
	NotWord
	// Digit matches an ASCII digit (\d).
	Digit
	// NotDigit matches anything but an ASCII digit (\D).
	NotDigit
	// Space matches a whitespace character (\s).
	Space
	// NotSpace matches a non-whitespace character (\S).
	NotSpace
	// Lower matches an ASCII lowercase letter.
	Lower
	// Upper matches an ASCII uppercase letter.
	Upper
	// Letter matches a Unicode letter (\p{L}).
	Letter
	// LowerLetter matches a Unicode lowercase letter (\p{Ll}).
	LowerLetter
	// UpperLetter matches a Unicode uppercase letter (\p{Lu}).
	UpperLetter
	// DecimalDigit matches a Unicode decimal digit (\p{Nd}).
	DecimalDigit
	// LineStart anchors at the start of a line (^).
	LineStart
	// LineEnd anchors at the end of a line ($).
	LineEnd
	// InputStart anchors at the start of the input (\A).
	InputStart
	// InputEnd anchors at the very end of the input (\z).
	InputEnd
	// InputEndLine anchors at the end of the input, allowing a
	// final newline (\Z).
	InputEndLine
	// WordBoundary anchors at a word boundary (\b).
	WordBoundary
	// NotWordBoundary anchors away from word boundaries (\B).
	NotWordBoundary

	maxClassTag
)

// classText holds the dialect-neutral rendering of each tag.
var classText = [maxClassTag]string{
	Word:            `\w`,
	NotWord:         `\W`,
	Digit:           `\d`,
	NotDigit:        `\D`,
	Space:           `\s`,
	NotSpace:        `\S`,
	Lower:           `[a-z]`,
	Upper:           `[A-Z]`,
	Letter:          `\p{L}`,
	LowerLetter:     `\p{Ll}`,
	UpperLetter:     `\p{Lu}`,
	DecimalDigit:    `\p{Nd}`,
	LineStart:       `^`,
	LineEnd:         `$`,
	InputStart:      `\A`,
	InputEnd:        `\z`,
	InputEndLine:    `\Z`,
	WordBoundary:    `\b`,
	NotWordBoundary: `\B`,
}

// classNames holds the stable wire name of each tag.
var classNames = [maxClassTag]string{
	Word:            "word",
	NotWord:         "not-word",
	Digit:           "digit",
	NotDigit:        "not-digit",
	Space:           "space",
	NotSpace:        "not-space",
	Lower:           "lower",
	Upper:           "upper",
	Letter:          "letter",
	LowerLetter:     "lower-letter",
	UpperLetter:     "upper-letter",
	DecimalDigit:    "decimal-digit",
	LineStart:       "line-start",
	LineEnd:         "line-end",
	InputStart:      "input-start",
	InputEnd:        "input-end",
	InputEndLine:    "input-end-line",
	WordBoundary:    "word-boundary",
	NotWordBoundary: "not-word-boundary",
}

func name2class(name string) (ClassTag, bool) {
	for i := range classNames {
		if classNames[i] == name {
			return ClassTag(i), true
		}
	}
	return 0, false
}

func (c ClassTag) String() string {
	if c < 0 || c >= maxClassTag {
		return "class(" + strconv.Itoa(int(c)) + ")"
	}
	return classNames[c]
}

// Class is a well-known character class or anchor; see ClassTag.
type Class struct {
	Tag ClassTag
}

// C returns the class term for tag.
func C(tag ClassTag) Class {
	return Class{Tag: tag}
}

func (c Class) Equals(t Term) bool {
	c2, ok := t.(Class)
	return ok && c == c2
}

func (c Class) text(dst *strings.Builder, redact bool) {
	if c.Tag < 0 || c.Tag >= maxClassTag {
		dst.WriteString("(?:)")
		return
	}
	dst.WriteString(classText[c.Tag])
}

func (c Class) unit() bool { return true }

func (c Class) walk(v Visitor) {}

// Unicode reports whether the class requires Unicode category
// support in the target dialect.
func (c Class) Unicode() bool {
	return c.Tag >= Letter && c.Tag <= DecimalDigit
}

// Anchor reports whether the class is a zero-width position
// assertion rather than a character class.
func (c Class) Anchor() bool {
	return c.Tag >= LineStart && c.Tag <= NotWordBoundary
}

// InputAnchor reports whether the class anchors at input
// boundaries (as opposed to line boundaries).
func (c Class) InputAnchor() bool {
	return c.Tag >= InputStart && c.Tag <= InputEndLine
}
