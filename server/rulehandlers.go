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
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jasonish/idsrule/core"
	"github.com/jasonish/idsrule/ruleparser"
	"github.com/jasonish/idsrule/rules"
	"github.com/pkg/errors"
)

type VersionResponse struct {
	Version  string `json:"version"`
	Revision string `json:"revision"`
}

func VersionHandler(appContext AppContext, r *http.Request) interface{} {
	return VersionResponse{
		core.BuildVersion,
		core.BuildRev,
	}
}

type RuleResponse struct {
	ruleparser.RuleSnapshot
	Gid uint64 `json:"gid"`
	Sid uint64 `json:"sid"`
	Raw string `json:"raw"`
}

func newRuleResponse(rule *ruleparser.Rule) RuleResponse {
	id, _ := rules.RuleIdOf(rule)
	return RuleResponse{
		RuleSnapshot: rule.Snapshot(),
		Gid:          id.Gid,
		Sid:          id.Sid,
		Raw:          rule.String(),
	}
}

// RulesHandler returns all loaded rules. The enabled query parameter
// limits the response to enabled or disabled rules.
func RulesHandler(appContext AppContext, r *http.Request) interface{} {
	var enabled *bool
	if value := r.FormValue("enabled"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Errorf("invalid value for enabled: %s", value)
		}
		enabled = &parsed
	}

	response := []RuleResponse{}
	for _, rule := range appContext.RuleMap.Rules() {
		if enabled != nil && rule.Enabled != *enabled {
			continue
		}
		response = append(response, newRuleResponse(rule))
	}
	return response
}

func findRule(appContext AppContext, r *http.Request) (*ruleparser.Rule, error) {
	vars := mux.Vars(r)
	gid := uint64(rules.DefaultGid)
	if value, ok := vars["gid"]; ok {
		var err error
		gid, err = strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid gid")
		}
	}
	sid, err := strconv.ParseUint(vars["sid"], 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sid")
	}
	return appContext.RuleMap.Find(gid, sid), nil
}

func RuleHandler(appContext AppContext, r *http.Request) interface{} {
	rule, err := findRule(appContext, r)
	if err != nil {
		return err
	}
	if rule == nil {
		return HttpNotFoundResponse("rule not found")
	}
	return newRuleResponse(rule)
}

// RuleRawHandler returns the rule as it would appear in a rule file.
func RuleRawHandler(appContext AppContext, r *http.Request) interface{} {
	rule, err := findRule(appContext, r)
	if err != nil {
		return err
	}
	if rule == nil {
		return HttpNotFoundResponse("rule not found")
	}
	return HttpTextResponse(rule.String() + "\n")
}
