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
	"bufio"
	"io"
	"os"
	"strings"
)

// ParseRules parses each line, returning a result for each line in
// order. Lines that are not rules have a nil entry. Parsing stops at the
// first malformed rule.
func ParseRules(lines []string) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(lines))
	for _, line := range lines {
		rule, err := ParseRule(line)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// ParseFile parses all the rules in a file.
func ParseFile(filename string) ([]*Rule, error) {
	info, err := os.Stat(filename)
	if err != nil || info.IsDir() {
		return nil, newParseError(ErrUnreadableFile, filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, newParseError(ErrUnreadableFile, filename)
	}
	defer file.Close()
	rules, err := ParseReader(file)
	if err != nil {
		if _, ok := err.(*ParseError); ok {
			return nil, err
		}
		return nil, newParseError(ErrUnreadableFile, filename)
	}
	return rules, nil
}

// ParseReader parses multiple rules from a reader.
func ParseReader(reader io.Reader) ([]*Rule, error) {
	rules := make([]*Rule, 0)

	ruleReader := NewRuleReader(reader)

	for {
		rule, err := ruleReader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// RuleReader parses rules one by one from an underlying reader.
type RuleReader struct {
	reader *bufio.Reader
	lineno int
}

// NewRuleReader creates a new RuleReader reading from a reader.
func NewRuleReader(reader io.Reader) *RuleReader {
	ruleReader := &RuleReader{
		reader: bufio.NewReader(reader),
	}
	return ruleReader
}

// LineNumber returns the number of the last line read.
func (r *RuleReader) LineNumber() int {
	return r.lineno
}

func (r *RuleReader) readLine() (string, error) {
	bytes, err := r.reader.ReadBytes('\n')
	if err != nil && len(bytes) == 0 {
		return "", err
	}
	r.lineno++
	return strings.TrimSpace(string(bytes)), nil
}

// Next returns the next rule read from the reader. Empty lines, lines
// that are not rules and commented out lines that don't parse as rules
// are skipped. A line ending in a backslash is continued on the next
// line, unless it is a comment.
func (r *RuleReader) Next() (*Rule, error) {

	ruleString := ""

	for {
		line, err := r.readLine()
		if err != nil && line == "" {
			return nil, err
		}

		if len(line) == 0 {
			continue
		}

		// Comment lines are never continued.
		if ruleString == "" && strings.HasPrefix(line, "#") {
			rule, err := ParseRule(line)
			if err != nil || rule == nil {
				continue
			}
			return rule, nil
		}

		if strings.HasSuffix(line, "\\") {
			ruleString += line[0 : len(line)-1]
			continue
		}

		ruleString += line

		rule, err := ParseRule(ruleString)
		ruleString = ""
		if err != nil {
			return nil, err
		}
		if rule == nil {
			continue
		}
		return rule, nil
	}

}
