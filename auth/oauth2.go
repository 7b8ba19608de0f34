package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/s0up4200/krakenctl/kraken"
)

// TokenURL is the endpoint that exchanges authorization codes for tokens
const TokenURL = "https://api.twitch.tv/kraken/oauth2/token"

// Endpoint describes the Kraken OAuth2 endpoints for golang.org/x/oauth2
var Endpoint = oauth2.Endpoint{
	AuthURL:   AuthorizeURL,
	TokenURL:  TokenURL,
	AuthStyle: oauth2.AuthStyleInParams,
}

// OAuth2Config returns a config for finishing the authorization-code flow
func OAuth2Config(c *kraken.Client, clientSecret, redirectURL string, scopes []Scope) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID(),
		ClientSecret: clientSecret,
		Endpoint:     Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       validNames(scopes),
	}
}

// ExchangeCode trades an authorization code for a token and installs it on c.
// The exchange goes through c's HTTP client unless ctx already carries one
// under oauth2.HTTPClient.
func ExchangeCode(ctx context.Context, c *kraken.Client, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is required")
	}

	if _, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); !ok {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient())
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := c.RotateToken(oauth2.StaticTokenSource(tok)); err != nil {
		return nil, err
	}
	return tok, nil
}
