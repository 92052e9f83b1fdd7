// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
)

// =============================================================================
// RESPONSE ENVELOPE
// =============================================================================

// Envelope is the canonical response wrapper the backend uses:
//
//	{"message": "...", "data": <payload>}
//
// Either field may be absent. Endpoints that return a bare JSON array
// (the session-messages listing) bypass the envelope entirely; see
// DecodeBody.
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeBody parses a 2xx response body into out. Two shapes are
// accepted: the canonical envelope, in which case Data is unmarshalled
// into out, and a bare JSON array when allowBareArray is set, in which
// case the whole body is unmarshalled into out. Anything else is a
// decode error. Passing a nil out skips payload decoding and only
// validates the envelope.
func DecodeBody(body []byte, out any, allowBareArray bool) (string, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		if out == nil {
			return "", nil
		}
		return "", NewDecodeError("empty response body", nil)
	}

	if trimmed[0] == '[' {
		if !allowBareArray {
			return "", NewDecodeError("unexpected array response", nil)
		}
		if out == nil {
			return "", nil
		}
		if err := json.Unmarshal(trimmed, out); err != nil {
			return "", NewDecodeError("malformed array response", err)
		}
		return "", nil
	}

	if trimmed[0] != '{' {
		return "", NewDecodeError("response is neither object nor array", nil)
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return "", NewDecodeError("malformed response envelope", err)
	}
	if out == nil {
		return env.Message, nil
	}
	payload := env.Data
	if len(payload) == 0 {
		// Some endpoints put the payload at the top level instead of
		// under data. Fall back to the whole object.
		payload = trimmed
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return env.Message, NewDecodeError("response payload does not match expected shape", err)
	}
	return env.Message, nil
}

// errorMessage pulls the backend's error text out of a non-2xx body.
// Falls back to empty string when the body is not the envelope shape.
func errorMessage(body []byte) string {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}
