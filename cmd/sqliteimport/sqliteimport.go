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

package sqliteimport

import (
	"github.com/jasonish/idsrule/config"
	"github.com/jasonish/idsrule/log"
	"github.com/jasonish/idsrule/rules"
	"github.com/jasonish/idsrule/sqlite"
	"github.com/spf13/pflag"
)

func Main(args []string) {

	var configFilename string
	var verbose bool

	flagset := pflag.NewFlagSet("sqliteimport", pflag.ExitOnError)
	flagset.StringVarP(&configFilename, "config", "c", "", "Configuration filename")
	flagset.StringP("database-filename", "D", "idsrule.sqlite", "Database filename")
	flagset.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	flagset.Parse(args)

	if verbose {
		log.SetLevel(log.DEBUG)
	}

	conf, err := config.LoadConfig(configFilename, flagset)
	if err != nil {
		log.Fatal(err)
	}

	if len(conf.Rules) == 0 {
		log.Fatal("No rule paths provided.")
	}

	store, err := sqlite.NewRuleStore(conf.DatabaseFilename)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ruleMap := rules.NewRuleMap(conf.Rules)

	count, err := store.StoreRules(ruleMap.Rules())
	if err != nil {
		log.Fatal(err)
	}

	total, err := store.Count()
	if err != nil {
		log.Fatal(err)
	}

	log.Info("Imported %d rules into %s; %d rules in database.",
		count, conf.DatabaseFilename, total)
}
