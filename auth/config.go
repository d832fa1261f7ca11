package auth

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/lukehollenback/fcsapi/constants"
)

var logger = logrus.WithField(constants.ComponentKey, "auth")

// Options seeds a Config. The zero value selects token authentication with no credentials, the
// default timeout, and the system clock.
type Options struct {
	Method      Method
	AccessKey   string
	PublicKey   string
	Token       string
	TokenExpiry int64
	Timeout     time.Duration
	Clock       clock.Clock
	Logger      *logrus.Entry
}

// credentials is an immutable snapshot of the authentication state. Config swaps whole snapshots
// so readers never observe a token from one issuance paired with an expiry from another.
type credentials struct {
	method    Method
	accessKey string
	token     TokenData
}

// Config holds the authentication method and credentials of a single API client and derives the
// parameters attached to each outbound request. It is safe for concurrent use.
//
// Config never fails a request on its own: missing token credentials produce an empty parameter
// set plus a warning, and the API's authentication error surfaces through the normal response
// path. Callers that prefer to fail early can call Validate.
type Config struct {
	creds   atomic.Pointer[credentials]
	timeout time.Duration
	clock   clock.Clock
	logger  *logrus.Entry
}

// NewConfig instantiates a configuration from explicit options.
func NewConfig(opts Options) *Config {
	o := &Config{
		timeout: opts.Timeout,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}

	if o.timeout <= 0 {
		o.timeout = constants.DefaultTimeout
	}

	if o.clock == nil {
		o.clock = clock.New()
	}

	if o.logger == nil {
		o.logger = logger
	}

	o.creds.Store(&credentials{
		method:    opts.Method,
		accessKey: opts.AccessKey,
		token: TokenData{
			Token:     opts.Token,
			Expiry:    opts.TokenExpiry,
			PublicKey: opts.PublicKey,
		},
	})

	return o
}

// WithAccessKey creates a configuration that authenticates with the private access key.
func WithAccessKey(accessKey string) *Config {
	return NewConfig(Options{Method: MethodAccessKey, AccessKey: accessKey})
}

// WithIPWhitelist creates a configuration that relies on the caller's whitelisted address.
func WithIPWhitelist() *Config {
	return NewConfig(Options{Method: MethodIPWhitelist})
}

// WithToken creates a configuration that authenticates with a token minted by a backend.
func WithToken(publicKey string, token string, expiry int64) *Config {
	return NewConfig(Options{Method: MethodToken, PublicKey: publicKey, Token: token, TokenExpiry: expiry})
}

// update applies fn to a copy of the current snapshot and publishes the copy.
func (o *Config) update(fn func(c *credentials)) {
	for {
		cur := o.creds.Load()
		next := *cur

		fn(&next)

		if o.creds.CompareAndSwap(cur, &next) {
			return
		}
	}
}

// SetAccessKey switches to access key authentication with the provided key. The key is opaque and
// is not validated.
func (o *Config) SetAccessKey(accessKey string) {
	o.update(func(c *credentials) {
		c.method = MethodAccessKey
		c.accessKey = accessKey
	})
}

// UseIPWhitelist switches to IP whitelist authentication. Stored credentials are kept but ignored.
func (o *Config) UseIPWhitelist() {
	o.update(func(c *credentials) {
		c.method = MethodIPWhitelist
	})
}

// SetToken switches to token authentication and replaces the whole token triple.
func (o *Config) SetToken(t TokenData) {
	o.update(func(c *credentials) {
		c.method = MethodToken
		c.token = t
	})
}

// LoadMetaTags seeds token fields from the fcs-* meta tags of an HTML document. Only tags that are
// present overwrite their field, and the authentication method is left alone.
func (o *Config) LoadMetaTags(r io.Reader) error {
	found, err := ReadMetaTags(r)
	if err != nil {
		return err
	}

	o.update(func(c *credentials) {
		if found.PublicKey != "" {
			c.token.PublicKey = found.PublicKey
		}

		if found.Token != "" {
			c.token.Token = found.Token
		}

		if found.Expiry != 0 {
			c.token.Expiry = found.Expiry
		}
	})

	return nil
}

func (o *Config) Method() Method {
	return o.creds.Load().method
}

func (o *Config) TokenData() TokenData {
	return o.creds.Load().token
}

func (o *Config) Timeout() time.Duration {
	return o.timeout
}

// IsTokenValid reports whether the current token can still be used. It is always true for methods
// other than token authentication. Tokens within TokenExpiryMargin seconds of expiry count as
// expired so callers refresh before requests start failing.
func (o *Config) IsTokenValid() bool {
	return o.tokenValid(o.creds.Load())
}

// tokenValid judges a single snapshot so callers never mix two triples.
func (o *Config) tokenValid(c *credentials) bool {
	if c.method != MethodToken {
		return true
	}

	if c.token.Token == "" || c.token.Expiry == 0 {
		return false
	}

	return c.token.Expiry > o.clock.Now().Unix()+constants.TokenExpiryMargin
}

// Validate is the fail-fast counterpart of Params: it returns ErrIncompleteCredentials or
// ErrExpiredToken where Params would silently degrade.
func (o *Config) Validate() error {
	c := o.creds.Load()

	if c.method != MethodToken {
		return nil
	}

	if !c.token.Complete() {
		return ErrIncompleteCredentials
	}

	if !o.tokenValid(c) {
		return ErrExpiredToken
	}

	return nil
}

// Params returns the authentication parameters to merge into an outbound request. The returned
// map is freshly allocated on every call.
//
// An expired token is still emitted; expiry is enforced by the API.
func (o *Config) Params() map[string]string {
	c := o.creds.Load()

	switch c.method {
	case MethodIPWhitelist:
		return map[string]string{}

	case MethodToken:
		if !c.token.Complete() {
			o.logger.WithFields(logrus.Fields{
				"method":         c.method.String(),
				"has_token":      c.token.Token != "",
				"has_expiry":     c.token.Expiry != 0,
				"has_public_key": c.token.PublicKey != "",
			}).Warn(ErrIncompleteCredentials.Error())

			return map[string]string{}
		}

		return c.token.Params()

	default:
		return map[string]string{AccessKeyParam: c.accessKey}
	}
}
