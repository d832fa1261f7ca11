package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockClockAt(sec int64) *clock.Mock {
	c := clock.NewMock()
	c.Set(time.Unix(sec, 0))

	return c
}

func TestGenerateIsDeterministic(t *testing.T) {
	c := mockClockAt(1000)

	g, err := NewGenerator("secret123", "pub1", 3600, WithClock(c))
	require.NoError(t, err)

	first := g.Generate()
	second := g.Generate()

	assert.Equal(t, first, second)
	assert.Equal(t, int64(4600), first.Expiry)
	assert.Equal(t, "pub1", first.PublicKey)
}

func TestGenerateMatchesHMAC(t *testing.T) {
	g, err := NewGenerator("secret123", "pub1", 3600, WithClock(mockClockAt(1000)))
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("secret123"))
	mac.Write([]byte("pub14600"))
	expected := hex.EncodeToString(mac.Sum(nil))

	got := g.Generate()

	assert.Equal(t, expected, got.Token)
	assert.Len(t, got.Token, 64)
	assert.Regexp(t, "^[0-9a-f]+$", got.Token)
}

func TestSignChangesWithEveryInput(t *testing.T) {
	base := Sign("secret123", "pub1", 4600)

	assert.NotEqual(t, base, Sign("secret122", "pub1", 4600), "access key")
	assert.NotEqual(t, base, Sign("secret123", "pub0", 4600), "public key")
	assert.NotEqual(t, base, Sign("secret123", "pub1", 4601), "expiry")
}

func TestNewGeneratorRejectsNonPositiveWindow(t *testing.T) {
	for _, window := range []int64{0, -1, -3600} {
		_, err := NewGenerator("k", "p", window)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "window %d", window)
	}

	_, err := GenerateToken("k", "p", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGenerateTokenUsesSystemClock(t *testing.T) {
	before := time.Now().Unix()

	tok, err := GenerateToken("k", "p", 300)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, tok.Expiry, before+300)
	assert.LessOrEqual(t, tok.Expiry, time.Now().Unix()+300)
}

func TestGeneratorJSONUsesWireNames(t *testing.T) {
	g, err := NewGenerator("secret123", "pub1", 3600, WithClock(mockClockAt(1000)))
	require.NoError(t, err)

	data, err := g.JSON()
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, Sign("secret123", "pub1", 4600), raw["_token"])
	assert.Equal(t, float64(4600), raw["_expiry"])
	assert.Equal(t, "pub1", raw["_public_key"])
}

func TestTokenDataUnmarshalAliases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TokenData
	}{
		{
			name:  "canonical",
			input: `{"_token":"T","_expiry":1700000000,"_public_key":"P"}`,
			want:  TokenData{Token: "T", Expiry: 1700000000, PublicKey: "P"},
		},
		{
			name:  "camel case",
			input: `{"token":"T","expiry":1700000000,"publicKey":"P"}`,
			want:  TokenData{Token: "T", Expiry: 1700000000, PublicKey: "P"},
		},
		{
			name:  "snake case public key and string expiry",
			input: `{"token":"T","expiry":"1700000000","public_key":"P"}`,
			want:  TokenData{Token: "T", Expiry: 1700000000, PublicKey: "P"},
		},
		{
			name:  "canonical wins",
			input: `{"token":"old","_token":"new","expiry":1,"_expiry":2,"publicKey":"a","_public_key":"b"}`,
			want:  TokenData{Token: "new", Expiry: 2, PublicKey: "b"},
		},
		{
			name:  "empty canonical falls back",
			input: `{"_token":"","token":"T","_expiry":null,"expiry":5,"_public_key":"","public_key":"P"}`,
			want:  TokenData{Token: "T", Expiry: 5, PublicKey: "P"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TokenData
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenDataUnmarshalRejectsGarbageExpiry(t *testing.T) {
	var got TokenData
	assert.Error(t, json.Unmarshal([]byte(`{"_expiry":"soon"}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"_token":5}`), &got))
}

func TestVerify(t *testing.T) {
	now := time.Unix(1000, 0)
	tok := TokenData{Token: Sign("secret123", "pub1", 4600), Expiry: 4600, PublicKey: "pub1"}

	assert.NoError(t, Verify("secret123", tok, now))
	assert.ErrorIs(t, Verify("wrong", tok, now), ErrInvalidSignature)
	assert.ErrorIs(t, Verify("secret123", tok, time.Unix(4600, 0)), ErrExpiredToken)

	extended := tok
	extended.Expiry = 9999
	assert.ErrorIs(t, Verify("secret123", extended, now), ErrInvalidSignature)

	rebound := tok
	rebound.PublicKey = "pub2"
	assert.ErrorIs(t, Verify("secret123", rebound, now), ErrInvalidSignature)

	assert.ErrorIs(t, Verify("secret123", TokenData{Token: tok.Token}, now), ErrIncompleteCredentials)
}

func TestGeneratorMetaTagsRoundTrip(t *testing.T) {
	g, err := NewGenerator("K", "PUB", 3600, WithClock(mockClockAt(1000)))
	require.NoError(t, err)

	got, err := ReadMetaTags(strings.NewReader(g.MetaTags()))
	require.NoError(t, err)

	assert.Equal(t, TokenData{Token: Sign("K", "PUB", 4600), Expiry: 4600, PublicKey: "PUB"}, got)
	assert.NoError(t, Verify("K", got, time.Unix(1000, 0)))
	assert.ErrorIs(t, Verify("K", got, time.Unix(4600, 0)), ErrExpiredToken)
}
