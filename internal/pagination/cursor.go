package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// cursorPayload is the wire shape behind a cursor token.
// Members are emitted in RFC 8785 order, so created_at always precedes id.
type cursorPayload struct {
	CreatedAt string `json:"created_at"`
	ID        string `json:"id"`
}

// naive ISO-8601 timestamps (no offset) are read as UTC.
const naiveISOLayout = "2006-01-02T15:04:05.999999999"

// EncodeCursor turns an ordering key into an opaque, URL-safe token.
// Equal keys always produce byte-identical tokens.
func EncodeCursor(k Key) string {
	raw, err := canonicalize(cursorPayload{
		CreatedAt: k.CreatedAt.UTC().Format(time.RFC3339Nano),
		ID:        k.ID,
	})
	if err != nil {
		// Two string members always marshal; an empty token restarts from the top.
		return ""
	}
	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor inverts EncodeCursor. Any malformed token (bad base64, non-object JSON,
// wrong member types, missing members, unparsable timestamp) yields ok == false,
// which callers treat exactly like "no cursor".
func DecodeCursor(token string) (Key, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Key{}, false
	}
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(token)
		if err != nil {
			return Key{}, false
		}
	}

	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Key{}, false
	}
	if p.CreatedAt == "" || p.ID == "" {
		return Key{}, false
	}
	ts, err := parseTimestamp(p.CreatedAt)
	if err != nil {
		return Key{}, false
	}
	return Key{CreatedAt: ts, ID: p.ID}, true
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.ParseInLocation(naiveISOLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cursor timestamp: %w", err)
	}
	return ts, nil
}

func canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cursor: marshal: %w", err)
	}
	out, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("cursor: canonicalize: %w", err)
	}
	return out, nil
}
