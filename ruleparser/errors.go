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

	"github.com/pkg/errors"
)

var (
	ErrUnterminatedOptions = errors.New("options must end with ';'")
	ErrEmptyMetadata       = errors.New("metadata cannot be empty")
	ErrUnreadableFile      = errors.New("rules file cannot be found or is not readable")
)

// ParseError is returned when input looks like a rule but is
// malformed. Input holds the fragment that failed to parse: the option
// buffer, the metadata buffer or the filename.
type ParseError struct {
	Input string
	Err   error
}

func newParseError(err error, input string) *ParseError {
	return &ParseError{
		Input: input,
		Err:   err,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Cause allows errors.Cause from github.com/pkg/errors to find the
// underlying sentinel.
func (e *ParseError) Cause() error {
	return e.Err
}
