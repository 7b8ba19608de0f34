package kraken

import "time"

// Root is the response of GET / which describes the calling token
type Root struct {
	Token TokenStatus `json:"token"`
}

// TokenStatus describes the validity and grants of the OAuth token
type TokenStatus struct {
	Valid         bool          `json:"valid"`
	UserName      string        `json:"user_name,omitempty"`
	UserID        string        `json:"user_id,omitempty"`
	ClientID      string        `json:"client_id,omitempty"`
	Authorization Authorization `json:"authorization"`
}

// Authorization lists the scopes granted to a token
type Authorization struct {
	Scopes    []string  `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasScope checks whether the token was granted scope
func (a *Authorization) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Page carries the pagination envelope fields Kraken adds to list responses.
// Embed it in endpoint-specific list types.
type Page struct {
	Total  int    `json:"_total"`
	Cursor string `json:"_cursor,omitempty"`
}

// HasMore reports whether the API returned a cursor for a following page
func (p *Page) HasMore() bool {
	return p.Cursor != ""
}
