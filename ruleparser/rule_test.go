// The MIT License (MIT)
// Copyright (c) 2016 Jason Ish
//
// Permission is hereby granted, free of charge, to any person
// obtaining a copy of this software and associated documentation
// files (the "Software"), to deal in the Software without
// restriction, including without limitation the rights to use, copy,
// modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS
// BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN
// ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package ruleparser

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, buf string) *Rule {
	rule, err := ParseRule(buf)
	require.Nil(t, err)
	require.NotNil(t, rule)
	return rule
}

func TestRule_Accessors(t *testing.T) {
	rule := mustParse(t, `alert tcp any any -> any any (msg:"Test"; target:dest_ip; priority:3; gid:3; sid:100; rev:a;)`)

	target, ok := rule.Target()
	assert.True(t, ok)
	assert.Equal(t, TargetDestIp, target)

	priority, ok := rule.Priority()
	assert.True(t, ok)
	assert.Equal(t, uint64(3), priority)

	gid, ok := rule.Gid()
	assert.True(t, ok)
	assert.Equal(t, uint64(3), gid)

	// Not a number.
	_, ok = rule.Rev()
	assert.False(t, ok)

	_, ok = rule.Classtype()
	assert.False(t, ok)
}

func TestRule_InvalidTarget(t *testing.T) {
	rule := mustParse(t, `alert tcp any any -> any any (target:both; sid:1;)`)
	_, ok := rule.Target()
	assert.False(t, ok)
}

func TestRule_AccessorsFollowOptions(t *testing.T) {
	rule := mustParse(t, `alert tcp any any -> any any (sid:1;)`)
	_, ok := rule.Rev()
	assert.False(t, ok)

	require.Nil(t, rule.AddOption("rev", "5"))
	rev, ok := rule.Rev()
	assert.True(t, ok)
	assert.Equal(t, uint64(5), rev)
}

func TestRule_AddOption(t *testing.T) {
	rule := mustParse(t, `alert tcp any  any -> any any (msg:"Test";   sid:1;)`)

	require.Nil(t, rule.AddOption("rev", "2"))
	assert.Equal(t, `alert tcp any  any -> any any (msg:"Test"; sid:1; rev:2;)`, rule.Raw)

	require.Nil(t, rule.InsertOption(1, "http_uri", ""))
	assert.Equal(t, `alert tcp any  any -> any any (msg:"Test"; http_uri; sid:1; rev:2;)`, rule.Raw)

	require.Nil(t, rule.InsertOption(0, "flow", "established"))
	assert.Equal(t, "flow", rule.Options[0].Name)

	require.Nil(t, rule.InsertOption(100, "classtype", "misc-activity"))
	assert.Equal(t, "classtype", rule.Options[len(rule.Options)-1].Name)

	require.Nil(t, rule.InsertOption(-1, "nocase", ""))
	assert.Equal(t, "nocase", rule.Options[0].Name)
}

func TestRule_AddOptionMetadata(t *testing.T) {
	rule := mustParse(t, `alert tcp any any -> any any (sid:1;)`)

	err := rule.AddOption("metadata", " ")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrEmptyMetadata))
	assert.Len(t, rule.Options, 1)

	require.Nil(t, rule.AddOption("metadata", "policy security-ips drop"))
	assert.Equal(t, KindMetadata, rule.Options[1].Kind)
	assert.Equal(t, "alert tcp any any -> any any (sid:1; metadata:policy security-ips drop;)", rule.Raw)
}

func TestRule_RemoveOption(t *testing.T) {
	rule := mustParse(t, `alert tcp any any -> any any (content:"a"; nocase; content:"b"; sid:1;)`)

	removed := rule.RemoveOption("content")
	assert.Len(t, removed, 2)
	assert.Equal(t, "alert tcp any any -> any any (nocase; sid:1;)", rule.Raw)

	raw := rule.Raw
	assert.Len(t, rule.RemoveOption("pcre"), 0)
	assert.Equal(t, raw, rule.Raw)
}

func TestRule_Metadata(t *testing.T) {
	rule := mustParse(t, `alert tcp any any -> any any (metadata:former_category MALWARE, tag Ransomware; sid:1; metadata:tag Trojan;)`)

	assert.Equal(t, []string{"former_category MALWARE", "tag Ransomware", "tag Trojan"}, rule.Metadata())

	rule.AddMetadata("created_at", "2019_01_01")
	assert.Equal(t,
		"alert tcp any any -> any any (metadata:former_category MALWARE, tag Ransomware, created_at 2019_01_01; sid:1; metadata:tag Trojan;)",
		rule.Raw)

	removed := rule.PopMetadata("tag")
	assert.Equal(t, []string{"tag Ransomware", "tag Trojan"}, removed)
	assert.Equal(t,
		"alert tcp any any -> any any (metadata:former_category MALWARE, created_at 2019_01_01; sid:1;)",
		rule.Raw)
}

func TestRule_AddMetadataWithoutOption(t *testing.T) {
	rule := mustParse(t, `alert tcp any any -> any any (sid:1;)`)
	rule.AddMetadata("tag", "test")
	assert.Equal(t, "alert tcp any any -> any any (sid:1; metadata:tag test;)", rule.Raw)
}

func TestMetadata(t *testing.T) {
	metadata := NewMetadata("tag one", "tag two", "policy balanced")
	assert.Equal(t, "tag one, tag two, policy balanced", metadata.String())
	assert.Equal(t, []string{"one", "two"}, metadata.Get("tag"))

	metadata.Add("signature_severity", "Major")
	assert.Equal(t, []string{"Major"}, metadata.Get("signature_severity"))

	assert.Equal(t, []string{"tag one", "tag two"}, metadata.Pop("tag"))
	assert.Equal(t, []string{"policy balanced", "signature_severity Major"}, metadata.Items)
	assert.Equal(t, []string{}, metadata.Pop("tag"))
}

func TestRule_String(t *testing.T) {
	rule := NewRule(false, ActionPass, "ip any any -> any any", nil)
	assert.Equal(t, "# pass ip any any -> any any ()", rule.String())
	rule.Enabled = true
	assert.Equal(t, "pass ip any any -> any any ()", rule.String())
}

func TestRule_Snapshot(t *testing.T) {
	rule := mustParse(t, `# alert tcp any any -> any any (msg:"x"; http_uri; metadata:a b, c d; sid:1;)`)

	buf, err := json.Marshal(rule.Snapshot())
	require.Nil(t, err)
	assert.JSONEq(t, `{
		"enabled": false,
		"action": "alert",
		"header": "tcp any any -> any any",
		"options": [
			{"name": "msg", "value": "\"x\""},
			{"name": "http_uri", "value": ""},
			{"name": "metadata", "value": ["a b", "c d"]},
			{"name": "sid", "value": "1"}
		]
	}`, string(buf))
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{
		"alert tcp any any -> any any (sid:1;)",
		"# Comment.",
		"",
		"# drop tcp any any -> any any (sid:2;)",
	})
	require.Nil(t, err)
	require.Len(t, rules, 4)
	assert.NotNil(t, rules[0])
	assert.Nil(t, rules[1])
	assert.Nil(t, rules[2])
	assert.False(t, rules[3].Enabled)

	_, err = ParseRules([]string{
		"alert tcp any any -> any any (sid:1;)",
		"alert tcp any any -> any any (sid:2)",
		"alert tcp any any -> any any (sid:3; metadata: ;)",
	})
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrUnterminatedOptions))
}

func TestParseFile(t *testing.T) {
	rules, err := ParseFile("testdata/sample.rules")
	require.Nil(t, err)
	require.Len(t, rules, 5)

	sids := []uint64{}
	for _, rule := range rules {
		sid, ok := rule.Sid()
		require.True(t, ok)
		sids = append(sids, sid)
	}
	assert.Equal(t, []uint64{2014929, 2000001, 2000002, 2000003, 2000005}, sids)

	assert.True(t, rules[0].Enabled)
	assert.False(t, rules[1].Enabled)
	assert.False(t, rules[2].Enabled)
	assert.Equal(t, `alert udp any any -> any 53 (msg:"A double commented rule"; sid:2000002; rev:1;)`, rules[2].Raw)
	assert.Equal(t, ActionDrop, rules[3].Action)
	assert.Equal(t, []string{"stage hostile_download", "created_at 2012_06_19"}, rules[0].Metadata())
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.rules")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrUnreadableFile))
	parseError, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, "testdata/does-not-exist.rules", parseError.Input)
}

func TestParseFile_Directory(t *testing.T) {
	_, err := ParseFile("testdata")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrUnreadableFile))
}

func TestRuleReader_CommentWithBackslash(t *testing.T) {
	buf := "# see notes in C:\\\nalert tcp any any -> any any (sid:5;)\n"
	rules, err := ParseReader(strings.NewReader(buf))
	require.Nil(t, err)
	require.Len(t, rules, 1)
	sid, _ := rules[0].Sid()
	assert.Equal(t, uint64(5), sid)
	assert.True(t, rules[0].Enabled)
}

func TestParseReader_Error(t *testing.T) {
	buf := `alert tcp any any -> any any (sid:1;)
alert tcp any any -> any any (sid:2)
alert tcp any any -> any any (sid:3;)
`
	rules, err := ParseReader(strings.NewReader(buf))
	assert.Nil(t, rules)
	assert.True(t, errors.Is(err, ErrUnterminatedOptions))
}

func TestParseMultilineRule(t *testing.T) {
	buf := `alert tcp any any -> any any ( \
msg:"A multiline rule"; sid:1;)

alert \
	tcp any any -> any any \
( \
	msg:"A rule split over many lines"; \
sid:2; rev:3; \
)
`
	rules, err := ParseReader(strings.NewReader(buf))
	require.Nil(t, err)
	require.Len(t, rules, 2)
	msg, _ := rules[1].Msg()
	assert.Equal(t, "A rule split over many lines", msg)
}

func TestRuleReader_CommentsAndBlanks(t *testing.T) {
	buf := `# Some comments

# and some blank lines.`
	reader := NewRuleReader(strings.NewReader(buf))
	rule, err := reader.Next()
	assert.Nil(t, rule)

	// And the only error should be EOF.
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 3, reader.LineNumber())
}
