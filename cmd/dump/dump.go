/* Copyright (c) 2017 Jason Ish
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions
 * are met:
 *
 * 1. Redistributions of source code must retain the above copyright
 *    notice, this list of conditions and the following disclaimer.
 * 2. Redistributions in binary form must reproduce the above copyright
 *    notice, this list of conditions and the following disclaimer in the
 *    documentation and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED ``AS IS'' AND ANY EXPRESS OR IMPLIED
 * WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
 * DISCLAIMED. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY DIRECT,
 * INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES
 * (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
 * SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION)
 * HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT,
 * STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING
 * IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package dump

import (
	"fmt"
	"io"
	"os"

	"github.com/jasonish/idsrule/log"
	"github.com/jasonish/idsrule/ruleparser"
	"github.com/jasonish/idsrule/util"
	flag "github.com/spf13/pflag"
)

const (
	FormatRules = "rules"
	FormatJson  = "json"
	FormatYaml  = "yaml"
)

// Dump writes the rules to w in the given format.
func Dump(w io.Writer, rules []*ruleparser.Rule, format string) error {
	switch format {
	case FormatRules:
		for _, rule := range rules {
			if _, err := fmt.Fprintln(w, rule.String()); err != nil {
				return err
			}
		}
		return nil
	}

	snapshots := make([]ruleparser.RuleSnapshot, 0, len(rules))
	for _, rule := range rules {
		snapshots = append(snapshots, rule.Snapshot())
	}

	switch format {
	case FormatJson:
		_, err := fmt.Fprintln(w, util.ToJsonPretty(snapshots))
		return err
	case FormatYaml:
		buf, err := util.ToYaml(snapshots)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, buf)
		return err
	}

	return fmt.Errorf("unknown format: %s", format)
}

func Main(args []string) {

	var format string
	var disabled bool
	var verbose bool

	flagset := flag.NewFlagSet("dump", flag.ExitOnError)
	flagset.StringVarP(&format, "format", "f", FormatRules, "Output format (rules, json, yaml)")
	flagset.BoolVar(&disabled, "disabled", false, "Include disabled rules")
	flagset.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	flagset.Parse(args)

	if verbose {
		log.SetLevel(log.DEBUG)
	}

	if len(flagset.Args()) == 0 {
		log.Fatal("No input files provided.")
	}

	rules := []*ruleparser.Rule{}
	for _, filename := range flagset.Args() {
		parsed, err := ruleparser.ParseFile(filename)
		if err != nil {
			log.Fatal(err)
		}
		log.Debug("Parsed %d rules from %s", len(parsed), filename)
		for _, rule := range parsed {
			if rule.Enabled || disabled {
				rules = append(rules, rule)
			}
		}
	}

	if err := Dump(os.Stdout, rules, format); err != nil {
		log.Fatal(err)
	}
}
