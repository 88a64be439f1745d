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
	"fmt"
	"strings"
)

const (
	OptionMsg       = "msg"
	OptionSid       = "sid"
	OptionGid       = "gid"
	OptionRev       = "rev"
	OptionPriority  = "priority"
	OptionClasstype = "classtype"
	OptionTarget    = "target"
	OptionMetadata  = "metadata"
)

// OptionKind identifies the options the parser knows about. It is
// decided once when the option is created.
type OptionKind int

const (
	KindOther OptionKind = iota
	KindMsg
	KindSid
	KindGid
	KindRev
	KindPriority
	KindClasstype
	KindTarget
	KindMetadata
)

var optionKinds = map[string]OptionKind{
	OptionMsg:       KindMsg,
	OptionSid:       KindSid,
	OptionGid:       KindGid,
	OptionRev:       KindRev,
	OptionPriority:  KindPriority,
	OptionClasstype: KindClasstype,
	OptionTarget:    KindTarget,
	OptionMetadata:  KindMetadata,
}

func kindOf(name string) OptionKind {
	if kind, ok := optionKinds[name]; ok {
		return kind
	}
	return KindOther
}

// Option is a single name[:value] clause of a rule. Flag options such
// as nocase have an empty Value. For metadata options the parsed
// argument is in Metadata and Value is left empty.
type Option struct {
	Kind     OptionKind
	Name     string
	Value    string
	Metadata *Metadata
}

// NewOption creates an option, parsing the value when name is
// metadata.
func NewOption(name string, value string) (Option, error) {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	option := Option{
		Kind: kindOf(name),
		Name: name,
	}
	if option.Kind == KindMetadata {
		metadata, err := ParseMetadata(value)
		if err != nil {
			return option, err
		}
		option.Metadata = metadata
	} else {
		option.Value = value
	}
	return option, nil
}

// NewMetadataOption creates a metadata option from already split items.
func NewMetadataOption(items ...string) Option {
	return Option{
		Kind:     KindMetadata,
		Name:     OptionMetadata,
		Metadata: NewMetadata(items...),
	}
}

// Arg returns the value as it appears in rule text.
func (o Option) Arg() string {
	if o.Kind == KindMetadata && o.Metadata != nil {
		return o.Metadata.String()
	}
	return strings.TrimSpace(o.Value)
}

// String renders the option as it is parsed back, with the name and
// value trimmed.
func (o Option) String() string {
	name := strings.TrimSpace(o.Name)
	arg := o.Arg()
	if arg == "" {
		return fmt.Sprintf("%s;", name)
	}
	return fmt.Sprintf("%s:%s;", name, arg)
}
