package auth

import (
	"fmt"
	"strings"
)

// Scope is an OAuth permission requested during authorization
type Scope int

// Scopes accepted by the Kraken authorization endpoint.
const (
	ChannelCheckSubscription Scope = iota + 1
	ChannelCommercial
	ChannelEditor
	ChannelFeedEdit
	ChannelFeedRead
	ChannelRead
	ChannelStream
	ChannelSubscriptions
	ChatLogin
	UserBlocksEdit
	UserBlocksRead
	UserFollowsEdit
	UserRead
	UserSubscriptions
	ViewingActivityRead
)

var scopeNames = map[Scope]string{
	ChannelCheckSubscription: "channel_check_subscription",
	ChannelCommercial:        "channel_commercial",
	ChannelEditor:            "channel_editor",
	ChannelFeedEdit:          "channel_feed_edit",
	ChannelFeedRead:          "channel_feed_read",
	ChannelRead:              "channel_read",
	ChannelStream:            "channel_stream",
	ChannelSubscriptions:     "channel_subscriptions",
	ChatLogin:                "chat_login",
	UserBlocksEdit:           "user_blocks_edit",
	UserBlocksRead:           "user_blocks_read",
	UserFollowsEdit:          "user_follows_edit",
	UserRead:                 "user_read",
	UserSubscriptions:        "user_subscriptions",
	ViewingActivityRead:      "viewing_activity_read",
}

// AllScopes returns every known scope in declaration order
func AllScopes() []Scope {
	scopes := make([]Scope, 0, len(scopeNames))
	for s := ChannelCheckSubscription; s <= ViewingActivityRead; s++ {
		scopes = append(scopes, s)
	}
	return scopes
}

// String returns the canonical lowercase name sent to the API
func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Valid reports whether s is one of the declared scopes
func (s Scope) Valid() bool {
	_, ok := scopeNames[s]
	return ok
}

// ParseScope converts a canonical scope name back to a Scope
func ParseScope(name string) (Scope, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range scopeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scope: %q", name)
}

// ParseScopes parses every name, failing on the first unknown one
func ParseScopes(names []string) ([]Scope, error) {
	scopes := make([]Scope, 0, len(names))
	for _, name := range names {
		s, err := ParseScope(name)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, s)
	}
	return scopes, nil
}

// FormatScopes joins scope names with "+" in the given order.
// Values outside the known set are skipped.
func FormatScopes(scopes []Scope) string {
	return strings.Join(validNames(scopes), "+")
}

func validNames(scopes []Scope) []string {
	names := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if s.Valid() {
			names = append(names, s.String())
		}
	}
	return names
}

// MarshalText implements encoding.TextMarshaler
func (s Scope) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid scope %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Scope) UnmarshalText(text []byte) error {
	parsed, err := ParseScope(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
