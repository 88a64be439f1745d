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
	"regexp"
	"strings"
)

// An optionally commented out header followed by a parenthesized
// option block at the end of the line.
var rulePattern = regexp.MustCompile(
	`^(?P<comment>#+)?\s*(?P<raw>(?P<header>[^()]+)\((?P<options>.*)\))$`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Remove leading and trailing quotes from a string.
func trimQuotes(buf string) string {
	buflen := len(buf)
	if buflen < 2 {
		return buf
	}
	if buf[0:1] == "\"" && buf[buflen-1:buflen] == "\"" {
		return buf[1 : buflen-1]
	}
	return buf
}

func splitAt(buf string, sep string) (string, string) {
	var leading string
	var trailing string

	parts := strings.SplitN(buf, sep, 2)
	if len(parts) > 1 {
		trailing = strings.TrimSpace(parts[1])
	}
	leading = strings.TrimSpace(parts[0])

	return leading, trailing
}

// Split an option block on each ';' that is not escaped with a
// backslash.
func splitOptions(buf string) []string {
	clauses := []string{}
	escaped := false
	start := 0
	for i, r := range buf {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case ';':
			clauses = append(clauses, buf[start:i])
			start = i + 1
		}
	}
	return append(clauses, buf[start:])
}

// ParseMetadata parses the argument of a metadata option into its comma
// separated items.
func ParseMetadata(buf string) (*Metadata, error) {
	if strings.TrimSpace(buf) == "" {
		return nil, newParseError(ErrEmptyMetadata, buf)
	}
	items := strings.Split(buf, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return NewMetadata(items...), nil
}

// ParseOptions parses the text between the parentheses of a rule. The
// options must be terminated with a ';'. Empty options, as in ";;", are
// dropped.
func ParseOptions(buf string) ([]Option, error) {
	buf = strings.TrimSpace(buf)
	if !strings.HasSuffix(buf, ";") {
		return nil, newParseError(ErrUnterminatedOptions, buf)
	}

	options := []Option{}
	for _, clause := range splitOptions(strings.TrimSuffix(buf, ";")) {
		if strings.TrimSpace(clause) == "" {
			continue
		}
		name, value := splitAt(clause, ":")
		option, err := NewOption(name, value)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}

	return options, nil
}

// ParseRule parses an IDS rule from a single line of text.
//
// If the line does not look like a rule, or the action is not known, nil
// is returned without an error. An error is only returned for a line
// that has the shape of a rule but malformed options.
func ParseRule(buf string) (*Rule, error) {
	match := rulePattern.FindStringSubmatch(strings.TrimSpace(buf))
	if match == nil {
		return nil, nil
	}
	groups := map[string]string{}
	for i, name := range rulePattern.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}

	parts := whitespacePattern.Split(strings.TrimSpace(groups["header"]), 2)
	if len(parts) != 2 {
		return nil, nil
	}

	action := Action(parts[0])
	if !action.Valid() {
		return nil, nil
	}

	options, err := ParseOptions(groups["options"])
	if err != nil {
		return nil, err
	}

	rule := &Rule{
		Enabled: groups["comment"] == "",
		Action:  action,
		Header:  parts[1],
		Options: options,
		Raw:     groups["raw"],
	}

	return rule, nil
}

// Serialize renders a rule from its parts. This is the text stored in
// Rule.Raw after a rule has been built or modified.
func Serialize(action Action, header string, options []Option) string {
	rendered := make([]string, 0, len(options))
	for _, option := range options {
		rendered = append(rendered, option.String())
	}
	return string(action) + " " + header + " (" + strings.Join(rendered, " ") + ")"
}
