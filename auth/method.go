package auth

import (
	"fmt"
	"strings"
)

// Method is an enum that represents the way requests are authenticated against the API. Exactly
// one method is active per configuration.
type Method int

const (
	MethodToken       Method = iota // Requests carry a short-lived HMAC token, its expiry, and the public key.
	MethodAccessKey                 // Requests carry the private access key.
	MethodIPWhitelist               // Requests carry nothing; the caller's address is trusted.
)

var methodNames = [...]string{"token", "access_key", "ip_whitelist"}

func (o Method) String() string {
	if o < 0 || int(o) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(o))
	}

	return methodNames[o]
}

// ParseMethod converts the wire name of an authentication method ("access_key", "ip_whitelist",
// or "token") into its enum value.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))

	for i, v := range methodNames {
		if v == name {
			return Method(i), nil
		}
	}

	return MethodToken, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}
