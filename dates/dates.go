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

// Package dates provides prebuilt pattern terms for common date and
// time shapes: ISO 8601 calendar dates, loose numeric dates with
// punctuation separators, English month names, and 24-hour clock
// times.
//
// The builders return ordinary term trees carrying named capturing
// groups (year, month, day, hour, minute, second, zone, sep), so
// submatches can be bound back to components after a flavor has
// translated the tree for a target engine. None of the trees are
// anchored; wrap them in term.C(term.InputStart) and
// term.C(term.InputEnd) to require a full match.
package dates

import (
	"github.com/rexterm/rexterm/term"
)

// Year matches a four-digit year and captures it as "year".
func Year() *term.Group {
	return term.Capture("year", term.Exactly(term.C(term.Digit), 4))
}

// ISODate matches an ISO 8601 calendar date (the 2006-01-02 shape)
// with zero-padded month and day, capturing "year", "month" and
// "day".
func ISODate() *term.Concat {
	return term.Seq(
		Year(),
		term.Text("-"),
		term.Capture("month", paddedMonth()),
		term.Text("-"),
		term.Capture("day", paddedDay()),
	)
}

// Separator matches a single punctuation separator and captures it as
// "sep". The numeric date builders use it on both sides of the middle
// component under the same name, so their group lists carry "sep"
// twice; engines that keep every capture report both.
func Separator() *term.Group {
	return term.Capture("sep", term.Raw("[-/.]", true))
}

// NumericDMY matches day-month-year numeric dates such as 14/07/2023
// or 1.7.2023. Leading zeros on day and month are optional, and the
// two separators are captured independently (a mixed 14/07.2023 still
// matches).
func NumericDMY() *term.Concat {
	return term.Seq(
		term.Capture("day", looseDay()),
		Separator(),
		term.Capture("month", looseMonth()),
		Separator(),
		Year(),
	)
}

// NumericMDY is NumericDMY with month and day exchanged, for
// month-day-year input such as 07/14/2023.
func NumericMDY() *term.Concat {
	return term.Seq(
		term.Capture("month", looseMonth()),
		Separator(),
		term.Capture("day", looseDay()),
		Separator(),
		Year(),
	)
}

// MonthName matches an English month name or its three-letter
// abbreviation, capturing it as "month". Matching is case-sensitive;
// wrap the result in term.WithFlags("i", ...) for targets with inline
// flags.
func MonthName() *term.Group {
	months := []struct {
		head, tail string
	}{
		{"Jan", "uary"},
		{"Feb", "ruary"},
		{"Mar", "ch"},
		{"Apr", "il"},
		{"May", ""},
		{"Jun", "e"},
		{"Jul", "y"},
		{"Aug", "ust"},
		{"Sep", "tember"},
		{"Oct", "ober"},
		{"Nov", "ember"},
		{"Dec", "ember"},
	}
	alts := make([]term.Term, 0, len(months))
	for _, m := range months {
		if m.tail == "" {
			alts = append(alts, term.Text(m.head))
			continue
		}
		alts = append(alts, term.Seq(term.Text(m.head), term.Opt(term.Text(m.tail))))
	}
	return term.Capture("month", term.OneOf(alts...))
}

// Time24 matches a 24-hour clock time with an optional seconds field,
// capturing "hour", "minute" and "second". The hour must be
// zero-padded (09:30, not 9:30).
func Time24() *term.Concat {
	return term.Seq(
		term.Capture("hour", term.OneOf(
			term.Seq(term.Raw("[01]", true), term.C(term.Digit)),
			term.Seq(term.Text("2"), term.Raw("[0-3]", true)),
		)),
		term.Text(":"),
		term.Capture("minute", sixty()),
		term.Opt(term.Seq(
			term.Text(":"),
			term.Capture("second", sixty()),
		)),
	)
}

// Timestamp matches an ISO date joined to a 24-hour time by a 'T' or
// a space, with an optional trailing zone ("Z" or an hh:mm offset)
// captured as "zone". The accepted shape is approximately RFC 3339.
func Timestamp() *term.Concat {
	zone := term.Capture("zone", term.OneOf(
		term.Text("Z"),
		term.Seq(
			term.Raw("[+-]", true),
			term.Exactly(term.C(term.Digit), 2),
			term.Text(":"),
			term.Exactly(term.C(term.Digit), 2),
		),
	))
	return term.Seq(
		ISODate(),
		term.Raw("[T ]", true),
		Time24(),
		term.Opt(zone),
	)
}

// paddedMonth is 01 through 12.
func paddedMonth() term.Term {
	return term.OneOf(
		term.Seq(term.Text("0"), term.Raw("[1-9]", true)),
		term.Seq(term.Text("1"), term.Raw("[0-2]", true)),
	)
}

// paddedDay is 01 through 31.
func paddedDay() term.Term {
	return term.OneOf(
		term.Seq(term.Text("0"), term.Raw("[1-9]", true)),
		term.Seq(term.Raw("[12]", true), term.C(term.Digit)),
		term.Seq(term.Text("3"), term.Raw("[01]", true)),
	)
}

// looseMonth is paddedMonth with the leading zero optional.
func looseMonth() term.Term {
	return term.OneOf(
		term.Seq(term.Opt(term.Text("0")), term.Raw("[1-9]", true)),
		term.Seq(term.Text("1"), term.Raw("[0-2]", true)),
	)
}

// looseDay is paddedDay with the leading zero optional.
func looseDay() term.Term {
	return term.OneOf(
		term.Seq(term.Opt(term.Text("0")), term.Raw("[1-9]", true)),
		term.Seq(term.Raw("[12]", true), term.C(term.Digit)),
		term.Seq(term.Text("3"), term.Raw("[01]", true)),
	)
}

// sixty is 00 through 59, zero-padded.
func sixty() term.Term {
	return term.Seq(term.Raw("[0-5]", true), term.C(term.Digit))
}
