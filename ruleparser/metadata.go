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
	"strings"
)

// Metadata is the parsed argument of a metadata option, a list of free
// text items in the order they appeared.
type Metadata struct {
	Items []string
}

func NewMetadata(items ...string) *Metadata {
	return &Metadata{
		Items: items,
	}
}

func (m *Metadata) String() string {
	items := make([]string, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, strings.TrimSpace(item))
	}
	return strings.Join(items, ", ")
}

// Add appends a "name value" item.
func (m *Metadata) Add(name string, value string) {
	m.AddItem(name + " " + value)
}

func (m *Metadata) AddItem(item string) {
	m.Items = append(m.Items, item)
}

// Pop removes all items starting with prefix, returning the removed
// items.
func (m *Metadata) Pop(prefix string) []string {
	removed := []string{}
	kept := m.Items[:0]
	for _, item := range m.Items {
		if strings.HasPrefix(item, prefix) {
			removed = append(removed, item)
		} else {
			kept = append(kept, item)
		}
	}
	m.Items = kept
	return removed
}

// Get returns the values of all items whose key, the first word of the
// item, is name.
func (m *Metadata) Get(name string) []string {
	values := []string{}
	for _, item := range m.Items {
		key, value := splitAt(item, " ")
		if key == name {
			values = append(values, value)
		}
	}
	return values
}
