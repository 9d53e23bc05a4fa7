package myflix

import (
	"bytes"
	"encoding/json"
)

// emptyBody is the fallback payload for successful responses with no body.
var emptyBody = json.RawMessage("{}")

// normalizeBody maps a raw 2xx body to a usable JSON document. Empty or
// whitespace-only bodies become "{}" so callers never see a nil payload.
// Normalizing an already-normalized body is a no-op.
func normalizeBody(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return emptyBody
	}
	return json.RawMessage(trimmed)
}
