// Package auth builds OAuth2 authorization URLs for the Kraken API and
// exchanges authorization codes for tokens.
package auth

import (
	"strings"

	"github.com/s0up4200/krakenctl/kraken"
)

// AuthorizeURL is the authorization endpoint
const AuthorizeURL = "https://api.twitch.tv/kraken/oauth2/authorize"

// ResponseType selects the OAuth2 flow
type ResponseType string

const (
	// CodeFlow is the authorization-code flow
	CodeFlow ResponseType = "code"
	// ImplicitFlow is the implicit-grant flow
	ImplicitFlow ResponseType = "token"
)

// Valid reports whether rt is one of the supported flows
func (rt ResponseType) Valid() bool {
	return rt == CodeFlow || rt == ImplicitFlow
}

// BuildAuthURL renders the authorization URL. Parameters appear in the order
// response_type, client_id, redirect_uri, scope, state.
// An unsupported rt falls back to CodeFlow and unknown scopes are left out.
func BuildAuthURL(clientID string, rt ResponseType, redirectURL string, scopes []Scope, state string) string {
	if !rt.Valid() {
		rt = CodeFlow
	}

	var b strings.Builder
	b.WriteString(AuthorizeURL)
	b.WriteString("?response_type=")
	b.WriteString(escapeQueryValue(string(rt)))
	b.WriteString("&client_id=")
	b.WriteString(escapeQueryValue(clientID))
	b.WriteString("&redirect_uri=")
	b.WriteString(escapeQueryValue(redirectURL))
	// scope names are fixed identifiers and the "+" separator must stay literal
	b.WriteString("&scope=")
	b.WriteString(FormatScopes(scopes))
	b.WriteString("&state=")
	b.WriteString(escapeQueryValue(state))
	return b.String()
}

// AuthCodeFlowURL builds an authorization-code flow URL for c's client id
func AuthCodeFlowURL(c *kraken.Client, redirectURL string, scopes []Scope, state string) string {
	return BuildAuthURL(c.ClientID(), CodeFlow, redirectURL, scopes, state)
}

// ImplicitGrantFlowURL builds an implicit-grant flow URL for c's client id
func ImplicitGrantFlowURL(c *kraken.Client, redirectURL string, scopes []Scope, state string) string {
	return BuildAuthURL(c.ClientID(), ImplicitFlow, redirectURL, scopes, state)
}

// escapeQueryValue percent-encodes only what would change how the query
// parses, so ordinary URLs stay readable: "http://localhost/cb" is kept as is.
func escapeQueryValue(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepInQuery(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func keepInQuery(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', ':', '/', '?', '@', '!', '$', '\'', '(', ')', '*', ',':
		return true
	}
	return false
}
