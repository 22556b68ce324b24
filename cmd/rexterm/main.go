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

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rexterm/rexterm/corpus"
	"github.com/rexterm/rexterm/flavor"
	"github.com/rexterm/rexterm/term"
)

var (
	dashd      string
	dashf      bool
	dasho      string
	dashstrict bool
	dashredact bool
	printTime  bool
)

func init() {
	flag.StringVar(&dashd, "d", "re2", "dialect (flavor) to translate for")
	flag.BoolVar(&dashf, "f", false, "read arguments as corpus files instead of single-term files")
	flag.StringVar(&dasho, "o", "", "file for output (default is stdout)")
	flag.BoolVar(&dashstrict, "strict", false, "escalate advisories into hard errors")
	flag.BoolVar(&dashredact, "redact", false, "redact literal text when echoing the input")
	flag.BoolVar(&printTime, "t", false, "print translation time on stderr")
}

// report is one output line: a pattern translated for one dialect.
type report struct {
	Run        string           `json:"run"`
	Name       string           `json:"name,omitempty"`
	Flavor     string           `json:"flavor"`
	Input      string           `json:"input"`
	Pattern    string           `json:"pattern,omitempty"`
	Groups     []string         `json:"groups,omitempty"`
	Advisories []advisoryReport `json:"advisories,omitempty"`
	Error      string           `json:"error,omitempty"`
}

type advisoryReport struct {
	Construct string `json:"construct"`
	Path      string `json:"path"`
	Note      string `json:"note"`
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func echo(t term.Term) string {
	if dashredact {
		return term.ToRedacted(t)
	}
	return term.ToString(t)
}

func translate(run string, fl *flavor.Flavor, name string, t term.Term) (report, error) {
	r := report{
		Run:    run,
		Name:   name,
		Flavor: fl.Name,
		Input:  echo(t),
	}
	p, err := fl.Express(t)
	if err != nil {
		r.Error = err.Error()
		return r, err
	}
	r.Pattern = p.Text
	r.Groups = p.Groups
	for _, a := range p.Advisories {
		r.Advisories = append(r.Advisories, advisoryReport{
			Construct: a.Construct,
			Path:      a.Path,
			Note:      a.Note,
		})
	}
	return r, nil
}

func doFile(enc *json.Encoder, run string, fl *flavor.Flavor, path string) {
	buf, err := os.ReadFile(path)
	if err != nil {
		exit(err)
	}
	t, err := term.Decode(buf)
	if err != nil {
		exit(fmt.Errorf("%s: %w", path, err))
	}
	r, err := translate(run, fl, path, t)
	if err != nil {
		exit(fmt.Errorf("%s: %w", path, err))
	}
	if err := enc.Encode(&r); err != nil {
		exit(err)
	}
}

// doCorpus translates every entry of a corpus file. Unlike the
// single-file mode, a pattern the dialect rejects does not stop the
// batch; the rejection lands in that entry's report.
func doCorpus(enc *json.Encoder, run string, fl *flavor.Flavor, path string) {
	cr, err := corpus.Open(path)
	if err != nil {
		exit(err)
	}
	defer cr.Close()
	for {
		e, err := cr.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			exit(fmt.Errorf("%s: %w", path, err))
		}
		r, _ := translate(run, fl, e.Name, e.Term)
		if err := enc.Encode(&r); err != nil {
			exit(err)
		}
	}
}

func main() {
	flag.Parse()
	fl := flavor.Lookup(dashd)
	if fl == nil {
		exit(fmt.Errorf("no flavor %q (have %v)", dashd, flavor.Flavors()))
	}
	if dashstrict {
		fl = fl.WithStrict(true)
	}
	var dst io.Writer = os.Stdout
	if dasho != "" {
		f, err := os.Create(dasho)
		if err != nil {
			exit(err)
		}
		dst = f
		defer f.Close()
	}
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	run := uuid.New().String()
	enc := json.NewEncoder(dst)
	start := time.Now()
	for i := range args {
		if dashf {
			doCorpus(enc, run, fl, args[i])
		} else {
			doFile(enc, run, fl, args[i])
		}
	}
	if printTime {
		fmt.Fprintf(os.Stderr, "translation time: %v\n", time.Since(start))
	}
}
