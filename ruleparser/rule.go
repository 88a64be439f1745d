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
	"strconv"
)

// Action is the keyword a rule starts with.
type Action string

const (
	ActionAlert  Action = "alert"
	ActionLog    Action = "log"
	ActionPass   Action = "pass"
	ActionDrop   Action = "drop"
	ActionReject Action = "reject"
	ActionSdrop  Action = "sdrop"
)

var validActions = map[Action]bool{
	ActionAlert:  true,
	ActionLog:    true,
	ActionPass:   true,
	ActionDrop:   true,
	ActionReject: true,
	ActionSdrop:  true,
}

func (a Action) Valid() bool {
	return validActions[a]
}

const (
	TargetSrcIp  = "src_ip"
	TargetDestIp = "dest_ip"
)

// Rule is a struct representing an IDS rule.
//
// Raw is the rule text without any leading comment markers. For a parsed
// rule it is the text exactly as read; once the rule is modified through
// one of its methods it is regenerated from Action, Header and Options,
// losing the original formatting. Code that modifies Options or a
// Metadata directly must call Rebuild.
type Rule struct {
	Enabled bool
	Action  Action

	// The header is everything between the action and the options,
	// protocol, addresses, ports and direction, kept as is.
	Header string

	// List of options in order.
	Options []Option

	Raw string
}

// NewRule builds a rule from its parts.
func NewRule(enabled bool, action Action, header string, options []Option) *Rule {
	rule := &Rule{
		Enabled: enabled,
		Action:  action,
		Header:  header,
		Options: options,
	}
	rule.Rebuild()
	return rule
}

// Rebuild regenerates Raw from the action, header and options.
func (r *Rule) Rebuild() {
	r.Raw = Serialize(r.Action, r.Header, r.Options)
}

// String returns the rule as it would appear in a rule file. Disabled
// rules are prefixed with a single "# ".
func (r *Rule) String() string {
	if !r.Enabled {
		return "# " + r.Raw
	}
	return r.Raw
}

func (r *Rule) find(kind OptionKind) (Option, bool) {
	for _, option := range r.Options {
		if option.Kind == kind {
			return option, true
		}
	}
	return Option{}, false
}

func (r *Rule) findUint(kind OptionKind) (uint64, bool) {
	option, ok := r.find(kind)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseUint(option.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func (r *Rule) Sid() (uint64, bool) {
	return r.findUint(KindSid)
}

func (r *Rule) Gid() (uint64, bool) {
	return r.findUint(KindGid)
}

func (r *Rule) Rev() (uint64, bool) {
	return r.findUint(KindRev)
}

func (r *Rule) Priority() (uint64, bool) {
	return r.findUint(KindPriority)
}

// Msg returns the rule message with the surrounding quotes removed.
func (r *Rule) Msg() (string, bool) {
	option, ok := r.find(KindMsg)
	if !ok {
		return "", false
	}
	return trimQuotes(option.Value), true
}

func (r *Rule) Classtype() (string, bool) {
	option, ok := r.find(KindClasstype)
	if !ok {
		return "", false
	}
	return option.Value, true
}

// Target returns the value of the target option, only if it is one of
// src_ip or dest_ip.
func (r *Rule) Target() (string, bool) {
	option, ok := r.find(KindTarget)
	if !ok {
		return "", false
	}
	switch option.Value {
	case TargetSrcIp, TargetDestIp:
		return option.Value, true
	}
	return "", false
}

// Metadata returns the items of all metadata options in the rule.
func (r *Rule) Metadata() []string {
	items := []string{}
	for _, option := range r.Options {
		if option.Kind == KindMetadata && option.Metadata != nil {
			items = append(items, option.Metadata.Items...)
		}
	}
	return items
}

// AddOption appends an option to the rule.
func (r *Rule) AddOption(name string, value string) error {
	return r.InsertOption(len(r.Options), name, value)
}

// InsertOption inserts an option before the option at index. The index
// is clamped to the bounds of the option list.
func (r *Rule) InsertOption(index int, name string, value string) error {
	option, err := NewOption(name, value)
	if err != nil {
		return err
	}

	if index < 0 {
		index = 0
	} else if index > len(r.Options) {
		index = len(r.Options)
	}

	r.Options = append(r.Options, Option{})
	copy(r.Options[index+1:], r.Options[index:])
	r.Options[index] = option

	r.Rebuild()
	return nil
}

// RemoveOption removes all options with the given name, returning the
// removed options.
func (r *Rule) RemoveOption(name string) []Option {
	removed := []Option{}
	kept := make([]Option, 0, len(r.Options))
	for _, option := range r.Options {
		if option.Name == name {
			removed = append(removed, option)
		} else {
			kept = append(kept, option)
		}
	}
	if len(removed) > 0 {
		r.Options = kept
		r.Rebuild()
	}
	return removed
}

// AddMetadata adds a "name value" item to the first metadata option,
// appending a new metadata option if the rule has none.
func (r *Rule) AddMetadata(name string, value string) {
	for i := range r.Options {
		if r.Options[i].Kind == KindMetadata && r.Options[i].Metadata != nil {
			r.Options[i].Metadata.Add(name, value)
			r.Rebuild()
			return
		}
	}
	r.Options = append(r.Options, NewMetadataOption(name+" "+value))
	r.Rebuild()
}

// PopMetadata removes the metadata items starting with prefix from all
// metadata options. A metadata option left without items is removed as
// an empty metadata option is not valid.
func (r *Rule) PopMetadata(prefix string) []string {
	removed := []string{}
	kept := make([]Option, 0, len(r.Options))
	for _, option := range r.Options {
		if option.Kind == KindMetadata && option.Metadata != nil {
			removed = append(removed, option.Metadata.Pop(prefix)...)
			if len(option.Metadata.Items) == 0 {
				continue
			}
		}
		kept = append(kept, option)
	}
	if len(removed) > 0 {
		r.Options = kept
		r.Rebuild()
	}
	return removed
}
