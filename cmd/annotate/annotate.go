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

package annotate

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jasonish/idsrule/evereader"
	"github.com/jasonish/idsrule/log"
	"github.com/jasonish/idsrule/rules"
	flag "github.com/spf13/pflag"
)

// Annotate copies events from reader to w, adding the rule text to
// alerts for known rules. The number of annotated events is returned.
func Annotate(reader *evereader.BasicReader, ruleMap *rules.RuleMap, w io.Writer) (int, error) {
	encoder := json.NewEncoder(w)
	count := 0
	for {
		event, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				return count, nil
			}
			return count, err
		}
		ruleMap.Filter(event)
		if event["rule"] != nil {
			count++
		}
		if err := encoder.Encode(event); err != nil {
			return count, err
		}
	}
}

func Main(args []string) {

	var rulePaths []string
	var verbose bool

	flagset := flag.NewFlagSet("annotate", flag.ExitOnError)
	flagset.StringSliceVarP(&rulePaths, "rules", "r", nil, "Rule file, directory or glob")
	flagset.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	flagset.Parse(args)

	if verbose {
		log.SetLevel(log.DEBUG)
	}

	if len(rulePaths) == 0 {
		log.Fatal("No rules provided.")
	}
	if len(flagset.Args()) == 0 {
		log.Fatal("No input files provided.")
	}

	ruleMap := rules.NewRuleMap(rulePaths)

	for _, filename := range flagset.Args() {
		reader, err := evereader.NewBasicReader(filename)
		if err != nil {
			log.Fatal(err)
		}
		count, err := Annotate(reader, ruleMap, os.Stdout)
		reader.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Debug("Annotated %d events from %s", count, filename)
	}
}
