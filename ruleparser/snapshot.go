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

// OptionSnapshot is an option as plain data. Value is a string, or a
// list of strings for metadata options.
type OptionSnapshot struct {
	Name  string      `json:"name" yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}

// RuleSnapshot is a rule as plain data for encoding to JSON, YAML and
// the like.
type RuleSnapshot struct {
	Enabled bool             `json:"enabled" yaml:"enabled"`
	Action  string           `json:"action" yaml:"action"`
	Header  string           `json:"header" yaml:"header"`
	Options []OptionSnapshot `json:"options" yaml:"options"`
}

func (o Option) Snapshot() OptionSnapshot {
	snapshot := OptionSnapshot{
		Name:  o.Name,
		Value: o.Value,
	}
	if o.Kind == KindMetadata && o.Metadata != nil {
		items := make([]string, len(o.Metadata.Items))
		copy(items, o.Metadata.Items)
		snapshot.Value = items
	}
	return snapshot
}

func (r *Rule) Snapshot() RuleSnapshot {
	options := make([]OptionSnapshot, 0, len(r.Options))
	for _, option := range r.Options {
		options = append(options, option.Snapshot())
	}
	return RuleSnapshot{
		Enabled: r.Enabled,
		Action:  string(r.Action),
		Header:  r.Header,
		Options: options,
	}
}
