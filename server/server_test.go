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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jasonish/idsrule/ruleparser"
	"github.com/jasonish/idsrule/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	parsed, err := ruleparser.ParseRules([]string{
		`alert tcp any any -> any any (msg:"One"; metadata:tag a, tag b; sid:1; rev:1;)`,
		`# alert tcp any any -> any any (msg:"Two"; sid:2; rev:1;)`,
		`drop tcp any any -> any any (msg:"Three"; gid:3; sid:1; rev:1;)`,
	})
	require.Nil(t, err)

	ruleMap := rules.NewRuleMap(nil)
	require.Equal(t, 3, ruleMap.AddRules(parsed))

	server := NewServer(AppContext{RuleMap: ruleMap})
	return httptest.NewServer(server.Handler())
}

func get(t *testing.T, url string, v interface{}) *http.Response {
	response, err := http.Get(url)
	require.Nil(t, err)
	defer response.Body.Close()
	if v != nil {
		require.Nil(t, json.NewDecoder(response.Body).Decode(v))
	}
	return response
}

func TestVersionHandler(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var version VersionResponse
	response := get(t, server.URL+"/api/1/version", &version)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.NotEmpty(t, version.Version)
}

func TestRulesHandler(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var all []RuleResponse
	response := get(t, server.URL+"/api/1/rules", &all)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	require.Len(t, all, 3)
	assert.Equal(t, uint64(1), all[0].Sid)
	assert.Equal(t, uint64(3), all[2].Gid)

	var disabled []RuleResponse
	get(t, server.URL+"/api/1/rules?enabled=false", &disabled)
	require.Len(t, disabled, 1)
	assert.Equal(t, uint64(2), disabled[0].Sid)
	assert.Equal(t, `# alert tcp any any -> any any (msg:"Two"; sid:2; rev:1;)`, disabled[0].Raw)

	var status HttpStatusResponseBody
	response = get(t, server.URL+"/api/1/rules?enabled=maybe", &status)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, http.StatusBadRequest, status.StatusCode)
}

func TestRuleHandler(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var rule map[string]interface{}
	response := get(t, server.URL+"/api/1/rules/1", &rule)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "alert", rule["action"])
	assert.Equal(t, true, rule["enabled"])
	options := rule["options"].([]interface{})
	require.Len(t, options, 4)
	metadata := options[1].(map[string]interface{})
	assert.Equal(t, "metadata", metadata["name"])
	assert.Equal(t, []interface{}{"tag a", "tag b"}, metadata["value"])

	var withGid RuleResponse
	get(t, server.URL+"/api/1/rules/3/1", &withGid)
	assert.Equal(t, "drop", withGid.Action)

	response = get(t, server.URL+"/api/1/rules/100", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)

	response = get(t, server.URL+"/api/1/rules/abc", nil)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}

func TestRuleRawHandler(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	response, err := http.Get(server.URL + "/api/1/rules/2/raw")
	require.Nil(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", response.Header.Get("Content-Type"))
}
