package oauth

import (
	"golang.org/x/oauth2"
)

// Static returns a token source that always yields accessToken.
func Static(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}
