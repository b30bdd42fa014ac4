package clientstore

import (
	"bytes"
	"encoding/json"

	"github.com/bytedance/sonic"
)

// envelope is the record written to structured storage so that an expiry can
// travel with the value: {"expiration": <ms since epoch|null>, "data": value}.
type envelope struct {
	// Expiration is nil for entries that never expire. Older writers may
	// have stored a fractional number, so it is decoded as float64.
	Expiration *float64
	Data       string
	// NullData marks a stored "data": null.
	NullData bool
}

type envelopeWire struct {
	Expiration *int64 `json:"expiration"`
	Data       string `json:"data"`
}

func encodeEnvelope(value string, expiration *int64) (string, error) {
	return sonic.MarshalString(envelopeWire{Expiration: expiration, Data: value})
}

var jsonNull = []byte("null")

// decodeEnvelope reports whether raw is an envelope. Anything that is not a
// JSON object with a "data" member, or whose expiration is not a number or
// null, is foreign data.
func decodeEnvelope(raw string) (envelope, bool) {
	var fields map[string]json.RawMessage
	if err := sonic.UnmarshalString(raw, &fields); err != nil || fields == nil {
		return envelope{}, false
	}
	data, ok := fields["data"]
	if !ok {
		return envelope{}, false
	}

	var env envelope
	if exp := bytes.TrimSpace(fields["expiration"]); len(exp) > 0 && !bytes.Equal(exp, jsonNull) {
		var ts float64
		if err := sonic.Unmarshal(exp, &ts); err != nil {
			return envelope{}, false
		}
		env.Expiration = &ts
	}

	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, jsonNull):
		env.NullData = true
	case data[0] == '"':
		if err := sonic.Unmarshal(data, &env.Data); err != nil {
			return envelope{}, false
		}
	default:
		// Non-string payloads from other writers come back as JSON text.
		env.Data = string(data)
	}
	return env, true
}

// expiredAt reports whether the envelope is past its expiry at nowMs.
func (e envelope) expiredAt(nowMs int64) bool {
	return e.Expiration != nil && float64(nowMs) > *e.Expiration
}
