package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lukehollenback/fcsapi/metrics"
)

const (
	TokenParam     = "_token"
	ExpiryParam    = "_expiry"
	PublicKeyParam = "_public_key"
	AccessKeyParam = "access_key"
)

// TokenData is the triple that crosses the trust boundary between the backend that mints a token
// and the frontend that spends it. Its JSON form uses the same field names as the request
// parameters, so it can be forwarded verbatim.
type TokenData struct {
	Token     string `json:"_token"`
	Expiry    int64  `json:"_expiry"`
	PublicKey string `json:"_public_key"`
}

// Complete returns whether or not all three fields of the triple are set.
func (o TokenData) Complete() bool {
	return o.Token != "" && o.Expiry != 0 && o.PublicKey != ""
}

// Params renders the triple as request parameters.
func (o TokenData) Params() map[string]string {
	return map[string]string{
		TokenParam:     o.Token,
		ExpiryParam:    strconv.FormatInt(o.Expiry, 10),
		PublicKeyParam: o.PublicKey,
	}
}

// UnmarshalJSON accepts the canonical underscore-prefixed field names as well as the legacy
// spellings "token", "expiry", "publicKey", and "public_key". When both spellings are present the
// canonical one wins. The expiry may be a JSON number or a numeric string.
func (o *TokenData) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error

	if o.Token, err = firstString(raw, TokenParam, "token"); err != nil {
		return err
	}

	if o.PublicKey, err = firstString(raw, PublicKeyParam, "public_key", "publicKey"); err != nil {
		return err
	}

	for _, key := range []string{ExpiryParam, "expiry"} {
		v, ok := raw[key]
		if !ok {
			continue
		}

		expiry, err := parseExpiry(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}

		if expiry != 0 {
			o.Expiry = expiry
			break
		}
	}

	return nil
}

func firstString(raw map[string]json.RawMessage, keys ...string) (string, error) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}

		var s *string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}

		if s != nil && *s != "" {
			return *s, nil
		}
	}

	return "", nil
}

func parseExpiry(v json.RawMessage) (int64, error) {
	var n json.Number

	if err := json.Unmarshal(v, &n); err == nil {
		if n == "" {
			return 0, nil
		}

		if i, err := n.Int64(); err == nil {
			return i, nil
		}

		f, err := n.Float64()
		if err != nil {
			return 0, err
		}

		return int64(f), nil
	}

	var s *string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, err
	}

	if s == nil || *s == "" {
		return 0, nil
	}

	return strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
}

// Sign computes the hex-encoded HMAC-SHA256 of the public key concatenated with the decimal expiry,
// keyed by the access key. The result is deterministic for a given triple.
func Sign(accessKey string, publicKey string, expiry int64) string {
	mac := hmac.New(sha256.New, []byte(accessKey))
	mac.Write([]byte(publicKey + strconv.FormatInt(expiry, 10)))

	return hex.EncodeToString(mac.Sum(nil))
}

// Verify is the check a holder of the access key performs on a presented token: it recomputes the
// signature, compares it in constant time, and rejects tokens whose expiry is not after now.
func Verify(accessKey string, t TokenData, now time.Time) error {
	if !t.Complete() {
		return ErrIncompleteCredentials
	}

	expected := Sign(accessKey, t.PublicKey, t.Expiry)

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(t.Token))) {
		return ErrInvalidSignature
	}

	if t.Expiry <= now.Unix() {
		return ErrExpiredToken
	}

	return nil
}

// Generator mints tokens for a single access key and public key pair. It is safe for concurrent use
// since none of its fields change after construction.
type Generator struct {
	accessKey string
	publicKey string
	window    int64
	clock     clock.Clock
}

type GeneratorOption func(*Generator)

// WithClock overrides the clock a generator reads the current time from.
func WithClock(c clock.Clock) GeneratorOption {
	return func(o *Generator) {
		o.clock = c
	}
}

// NewGenerator instantiates a generator whose tokens stay valid for windowSeconds after issuance.
// A non-positive window is rejected with ErrInvalidArgument.
func NewGenerator(accessKey string, publicKey string, windowSeconds int64, opts ...GeneratorOption) (*Generator, error) {
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("%w: token window must be positive, got %d", ErrInvalidArgument, windowSeconds)
	}

	o := &Generator{
		accessKey: accessKey,
		publicKey: publicKey,
		window:    windowSeconds,
		clock:     clock.New(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Generate mints a fresh token that expires the configured window from now.
func (o *Generator) Generate() TokenData {
	expiry := o.clock.Now().Unix() + o.window

	metrics.RecordTokenIssued()

	return TokenData{
		Token:     Sign(o.accessKey, o.publicKey, expiry),
		Expiry:    expiry,
		PublicKey: o.publicKey,
	}
}

// JSON mints a fresh token and renders it as a JSON object.
func (o *Generator) JSON() ([]byte, error) {
	return json.Marshal(o.Generate())
}

// MetaTags mints a fresh token and renders it as HTML meta tags that ReadMetaTags understands.
func (o *Generator) MetaTags() string {
	return MetaTags(o.Generate())
}

// GenerateToken mints a single token against the system clock. It is the shorthand for backends
// that do not keep a Generator around.
func GenerateToken(accessKey string, publicKey string, windowSeconds int64) (TokenData, error) {
	g, err := NewGenerator(accessKey, publicKey, windowSeconds)
	if err != nil {
		return TokenData{}, err
	}

	return g.Generate(), nil
}
