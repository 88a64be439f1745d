/* Copyright (c) 2016 Jason Ish
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

package evereader

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/jasonish/idsrule/eve"
	"github.com/pkg/errors"
)

// BasicReader reads eve events, one per line, from a file or other
// reader.
type BasicReader struct {
	closer io.Closer
	reader *bufio.Reader
	lineno int
}

func NewBasicReader(filename string) (*BasicReader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	basicReader := NewBasicReaderFromReader(file)
	basicReader.closer = file
	return basicReader, nil
}

func NewBasicReaderFromReader(reader io.Reader) *BasicReader {
	return &BasicReader{
		reader: bufio.NewReader(reader),
	}
}

func (r *BasicReader) Close() {
	if r.closer != nil {
		r.closer.Close()
	}
}

// NextLine returns the next line, without the trailing new line. A
// final line without a new line is returned before io.EOF.
func (r *BasicReader) NextLine() ([]byte, error) {
	line, err := r.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			r.lineno++
			return line, nil
		}
		return nil, err
	}
	r.lineno++
	return bytes.TrimRight(line, "\r\n"), nil
}

// Next returns the next event, skipping blank lines.
func (r *BasicReader) Next() (eve.EveEvent, error) {
	for {
		line, err := r.NextLine()
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		event, err := eve.NewEveEventFromBytes(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", r.lineno)
		}
		return event, nil
	}
}
