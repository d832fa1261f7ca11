package auth

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	MetaPublicKey   = "fcs-public-key"
	MetaToken       = "fcs-token"
	MetaTokenExpiry = "fcs-token-expiry"
)

// MetaTags renders a token triple as the HTML meta tags a server-rendered page embeds.
func MetaTags(t TokenData) string {
	return fmt.Sprintf(
		"<meta name=\"%s\" content=\"%s\">\n<meta name=\"%s\" content=\"%s\">\n<meta name=\"%s\" content=\"%d\">",
		MetaPublicKey, html.EscapeString(t.PublicKey),
		MetaToken, html.EscapeString(t.Token),
		MetaTokenExpiry, t.Expiry,
	)
}

// ReadMetaTags scans an HTML document for the fcs-* meta tags and returns whatever part of the
// token triple it found. Missing tags leave their fields empty.
func ReadMetaTags(r io.Reader) (TokenData, error) {
	var t TokenData

	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return t, nil
			}

			return t, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}

			var name, content string

			for _, a := range tok.Attr {
				switch strings.ToLower(a.Key) {
				case "name":
					name = a.Val
				case "content":
					content = strings.TrimSpace(a.Val)
				}
			}

			if content == "" {
				continue
			}

			switch name {
			case MetaPublicKey:
				t.PublicKey = content
			case MetaToken:
				t.Token = content
			case MetaTokenExpiry:
				expiry, err := strconv.ParseInt(content, 10, 64)
				if err != nil {
					return t, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, MetaTokenExpiry, err)
				}

				t.Expiry = expiry
			}
		}
	}
}
