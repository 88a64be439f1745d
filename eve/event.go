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

package eve

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/jasonish/idsrule/util"
	"github.com/pkg/errors"
)

// The Eve timestamp format - a slightly modified RFC3339Nano format.
const EveTimestampFormat = "2006-01-02T15:04:05.999999999Z0700"

func ParseTimestamp(timestamp string) (time.Time, error) {
	return time.Parse(EveTimestampFormat, timestamp)
}

// A EveEvent is an Eve event decoded into map[string]interface{} which
// contains all the data in its raw format.
type EveEvent map[string]interface{}

func NewEveEventFromBytes(b []byte) (event EveEvent, err error) {

	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.UseNumber()
	if err := decoder.Decode(&event); err != nil {
		return nil, err
	}

	// Attempt to parse the timestamp, fail the decode if it can't be
	// parsed.
	timestamp, err := event.parseTimestamp()
	if err != nil {
		return nil, err
	}

	// Cache the timestamp.
	event["__parsed_timestamp"] = timestamp

	return event, nil
}

func NewEveEventFromString(s string) (event EveEvent, err error) {
	return NewEveEventFromBytes([]byte(s))
}

func (e EveEvent) MarshalJSON() ([]byte, error) {
	event := map[string]interface{}{}
	for key, val := range e {
		if strings.HasPrefix(key, "__") {
			continue
		}
		event[key] = val
	}
	return json.Marshal(event)
}

func (e EveEvent) parseTimestamp() (time.Time, error) {
	tsstring, ok := e["timestamp"].(string)
	if !ok {
		return time.Time{}, errors.New("timestamp is not a string")
	}
	return ParseTimestamp(tsstring)
}

func (e EveEvent) Timestamp() time.Time {
	ts, _ := e["__parsed_timestamp"].(time.Time)
	return ts
}

func (e EveEvent) EventType() string {
	return e.GetString("event_type")
}

func (e EveEvent) GetMap(key string) util.JsonMap {
	return util.JsonMap(e).GetMap(key)
}

func (e EveEvent) GetString(key string) string {
	return util.JsonMap(e).GetString(key)
}

func (e EveEvent) GetAlert() util.JsonMap {
	return e.GetMap("alert")
}

func (e EveEvent) GetAlertSignatureId() (uint64, bool) {
	return e.GetAlert().GetUint64("signature_id")
}

// GetAlertGeneratorId returns the gid of the alert, defaulting to 1 if
// not present.
func (e EveEvent) GetAlertGeneratorId() uint64 {
	if gid, ok := e.GetAlert().GetUint64("gid"); ok {
		return gid
	}
	return 1
}
