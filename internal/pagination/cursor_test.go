package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	keys := []Key{
		{CreatedAt: baseTime, ID: "a"},
		{CreatedAt: time.Date(2023, 12, 31, 23, 59, 59, 123456789, time.UTC), ID: "6f1c5b1e-9d7e-4a51-8c0e-1f2a3b4c5d6e"},
		{CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 500, berlin), ID: "with spaces & <symbols>"},
		{CreatedAt: time.Unix(0, 0).UTC(), ID: "ünïcødé"},
	}
	for _, k := range keys {
		got, ok := DecodeCursor(EncodeCursor(k))
		require.True(t, ok, "key %+v did not decode", k)
		assert.True(t, got.Equal(k), "got %+v want %+v", got, k)
		assert.Equal(t, time.UTC, got.CreatedAt.Location())
	}
}

func TestCursor_CanonicalAndDeterministic(t *testing.T) {
	k := Key{CreatedAt: baseTime, ID: "lead-1"}
	token := EncodeCursor(k)

	raw, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Equal(t, `{"created_at":"2024-03-01T12:00:00Z","id":"lead-1"}`, string(raw))

	// same instant, different zone: identical bytes
	sameInstant := Key{CreatedAt: baseTime.In(time.FixedZone("X", -5*3600)), ID: "lead-1"}
	assert.Equal(t, token, EncodeCursor(sameInstant))
}

func TestCursor_Leniency(t *testing.T) {
	enc := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"not base64", "###not-valid###"},
		{"truncated", EncodeCursor(Key{CreatedAt: baseTime, ID: "x"})[:10]},
		{"not json", enc("hello")},
		{"json array", enc(`["2024-03-01T12:00:00Z","x"]`)},
		{"json null", enc(`null`)},
		{"missing id", enc(`{"created_at":"2024-03-01T12:00:00Z"}`)},
		{"missing created_at", enc(`{"id":"x"}`)},
		{"empty id", enc(`{"created_at":"2024-03-01T12:00:00Z","id":""}`)},
		{"numeric created_at", enc(`{"created_at":1709294400,"id":"x"}`)},
		{"numeric id", enc(`{"created_at":"2024-03-01T12:00:00Z","id":7}`)},
		{"bad timestamp", enc(`{"created_at":"yesterday","id":"x"}`)},
		{"trailing garbage", enc(`{"created_at":"2024-03-01T12:00:00Z","id":"x"}}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, ok := DecodeCursor(tc.token)
				assert.False(t, ok)
			})
		})
	}
}

func TestCursor_AcceptsUnpaddedAndNaiveTimestamps(t *testing.T) {
	k := Key{CreatedAt: baseTime, ID: "lead-1"}
	raw, err := base64.URLEncoding.DecodeString(EncodeCursor(k))
	require.NoError(t, err)

	got, ok := DecodeCursor(base64.RawURLEncoding.EncodeToString(raw))
	require.True(t, ok)
	assert.True(t, got.Equal(k))

	naive := base64.URLEncoding.EncodeToString([]byte(`{"created_at": "2024-03-01T12:00:00.250000", "id": "lead-1"}`))
	got, ok = DecodeCursor(naive)
	require.True(t, ok)
	assert.True(t, got.CreatedAt.Equal(baseTime.Add(250*time.Millisecond)))
}
