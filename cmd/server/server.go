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

package server

import (
	"fmt"
	"net"

	"github.com/jasonish/idsrule/config"
	"github.com/jasonish/idsrule/core"
	"github.com/jasonish/idsrule/log"
	"github.com/jasonish/idsrule/rules"
	"github.com/jasonish/idsrule/server"
	"github.com/spf13/pflag"
)

var opts struct {
	Config  string
	Version bool
}

func VersionMain() {
	fmt.Printf("idsrule Version %s (rev %s)\n",
		core.BuildVersion, core.BuildRev)
}

func Main(args []string) {

	flagset := pflag.NewFlagSet("server", pflag.ExitOnError)
	flagset.StringVarP(&opts.Config, "config", "c", "", "Configuration filename")
	flagset.BoolVarP(&opts.Version, "version", "", false, "Show version")
	flagset.StringP("port", "p", "5637", "Port to bind to")
	flagset.String("host", "127.0.0.1", "Host to bind to")
	flagset.String("log-level", "info", "Log level (error, warning, info, debug)")
	flagset.Parse(args)

	if opts.Version {
		VersionMain()
		return
	}

	conf, err := config.LoadConfig(opts.Config, flagset)
	if err != nil {
		log.Fatal(err)
	}

	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	if len(conf.Rules) == 0 {
		log.Fatal("No rule paths provided.")
	}

	appContext := server.AppContext{
		RuleMap: rules.NewRuleMap(conf.Rules),
	}

	httpServer := server.NewServer(appContext)
	if err := httpServer.Start(net.JoinHostPort(conf.Http.Host, conf.Http.Port)); err != nil {
		log.Fatal(err)
	}
}
