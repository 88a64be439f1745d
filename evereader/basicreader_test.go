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
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawEvent = `{"timestamp": "2017-01-02T03:04:05.123456-0600", "event_type": "alert", "alert": {"signature_id": 1}}`

func TestBasicReader(t *testing.T) {
	reader := NewBasicReaderFromReader(strings.NewReader(rawEvent + "\n\n" + rawEvent))

	event, err := reader.Next()
	require.Nil(t, err)
	assert.Equal(t, "alert", event.EventType())

	// Last line has no new line.
	event, err = reader.Next()
	require.Nil(t, err)
	sid, ok := event.GetAlertSignatureId()
	assert.True(t, ok)
	assert.Equal(t, uint64(1), sid)

	event, err = reader.Next()
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, event)
}

func TestBasicReader_BadEvent(t *testing.T) {
	reader := NewBasicReaderFromReader(strings.NewReader(rawEvent + "\n{\"timestamp\": 1}\n"))

	_, err := reader.Next()
	require.Nil(t, err)

	_, err = reader.Next()
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestNewBasicReader_NotFound(t *testing.T) {
	_, err := NewBasicReader("does-not-exist.json")
	assert.NotNil(t, err)
}
