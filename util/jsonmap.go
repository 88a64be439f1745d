/* Copyright (c) 2017 Jason Ish
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
)

// A wrapper around a generic string map for accessing elements.
type JsonMap map[string]interface{}

func (m JsonMap) GetMap(name string) JsonMap {
	if m == nil {
		return nil
	}
	switch v := m[name].(type) {
	case map[string]interface{}:
		return JsonMap(v)
	case JsonMap:
		return v
	}
	return nil
}

func (m JsonMap) Get(name string) interface{} {
	if m == nil {
		return nil
	}
	return m[name]
}

func (m JsonMap) GetString(name string) string {
	if m == nil {
		return ""
	}
	val, ok := m[name].(string)
	if !ok {
		return ""
	}
	return val
}

// GetUint64 returns the value as an unsigned integer if it is a
// json.Number, or a number type.
func (m JsonMap) GetUint64(name string) (uint64, bool) {
	switch v := m.Get(name).(type) {
	case json.Number:
		value, err := v.Int64()
		if err == nil && value >= 0 {
			return uint64(value), true
		}
	case uint64:
		return v, true
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 {
			return uint64(v), true
		}
	}
	return 0, false
}

func (m JsonMap) HasKey(key string) bool {
	return m[key] != nil
}
