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

package util

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonMap(t *testing.T) {
	var m JsonMap
	require.Nil(t, json.Unmarshal([]byte(`{"alert": {"signature_id": 10}, "name": "x"}`), &m))

	assert.Equal(t, "x", m.GetString("name"))
	assert.Equal(t, "", m.GetString("missing"))
	assert.True(t, m.HasKey("alert"))

	sid, ok := m.GetMap("alert").GetUint64("signature_id")
	assert.True(t, ok)
	assert.Equal(t, uint64(10), sid)

	_, ok = m.GetMap("missing").GetUint64("signature_id")
	assert.False(t, ok)
}

func TestToYaml(t *testing.T) {
	buf, err := ToYaml(map[string]interface{}{
		"items": []string{"a", "b"},
	})
	require.Nil(t, err)
	assert.Equal(t, "items:\n- a\n- b\n", buf)
	assert.True(t, strings.HasPrefix(ToJsonPretty([]int{1}), "["))
	assert.Equal(t, `{"a":1}`, ToJson(map[string]int{"a": 1}))
}
