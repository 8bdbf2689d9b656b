package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// envelope captures the top-level marker fields shared across upstream
// dialects. Status is kept raw because providers disagree on its type:
// some send a boolean flag, others an HTTP-style numeric code.
type envelope struct {
	Status  json.RawMessage `json:"status"`
	Success *bool           `json:"success"`
	Creator string          `json:"creator"`
	Data    json.RawMessage `json:"data"`
	Result  json.RawMessage `json:"result"`
}

func parseEnvelope(body []byte) (envelope, bool) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, false
	}
	return env, true
}

func (e envelope) statusBool() (bool, bool) {
	var v bool
	if err := json.Unmarshal(e.Status, &v); err != nil {
		return false, false
	}
	return v, true
}

func (e envelope) statusCode() (int, bool) {
	var v int
	if err := json.Unmarshal(e.Status, &v); err != nil {
		return 0, false
	}
	return v, true
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// decode unmarshals raw into out and reports success. A decode failure is a
// shape mismatch, never an error: the caller falls through to the empty
// result.
func decode(raw json.RawMessage, out any) bool {
	if !present(raw) {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// flexID tolerates providers that send identifiers and counters as either
// JSON numbers or JSON strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	*f = flexID(string(b))
	return nil
}

func (f flexID) String() string {
	return string(f)
}

// Int64Or parses the value as an integer, falling back when it is absent
// or not numeric.
func (f flexID) Int64Or(fallback int64) int64 {
	if f == "" {
		return fallback
	}
	v, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
