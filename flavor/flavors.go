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

func init() {
	Register(newStrict())
	Register(newECMA())
	Register(newLegacy())
	Register(newRE2())
}

// newStrict builds the "strict" flavor: a PCRE-shaped dialect where
// nearly every construct is native, but group syntax is the
// (?P<name>...) spelling and the word class is pinned to an explicit
// ASCII set so matches cannot drift with engine locale settings.
func newStrict() *Flavor {
	return New("strict",
		AtomicGroups|Lookahead|Lookbehind|NamedGroups|Backrefs|
			UnicodeClasses|InlineFlags|InputAnchors,
		withCommon(ruleASCIIWord, rulePGroups)...,
	)
}

// newECMA builds the "ecma" flavor: the embedded-browser profile of
// ECMAScript regexes. Lookahead, named groups and named
// backreferences are native; lookbehind, Unicode categories, inline
// flags, possessive quantifiers and atomic groups are not.
// Possessive and atomic constructs are rewritten into the
// lookahead-plus-backreference form; lookbehind and \p{...} have no
// rewrite and fail hard; \A and \z are loosened to ^ and $ with an
// advisory.
func newECMA() *Flavor {
	return New("ecma",
		Lookahead|NamedGroups|Backrefs,
		withCommon(ruleNoUnicode)...,
	)
}

// newLegacy builds the "legacy" flavor: an old byte-oriented engine
// with the full backtracking repertoire but no Unicode tables.
// Category classes degrade to ASCII ranges with an advisory; group
// syntax is the (?P<name>...) spelling.
func newLegacy() *Flavor {
	return New("legacy",
		AtomicGroups|Lookahead|Lookbehind|NamedGroups|Backrefs|
			InlineFlags|InputAnchors,
		withCommon(ruleApproxUnicode, rulePGroups)...,
	)
}

// newRE2 builds the "re2" flavor: linear-time engines in the RE2
// family, including Go's regexp package. There is no backtracking,
// so backreferences, lookaround, possessive quantifiers and atomic
// groups all fail hard; named groups use (?P<name>...); \Z is
// approximated by \z.
func newRE2() *Flavor {
	return New("re2",
		NamedGroups|UnicodeClasses|InlineFlags|InputAnchors,
		withCommon(ruleFinalNewline, rulePGroups)...,
	)
}
