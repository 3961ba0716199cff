// Package auth supplies credentials for calls to the documents API.
package auth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCredentials configures the OAuth2 client-credentials grant.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

// Enabled reports whether enough is set to request tokens.
func (c ClientCredentials) Enabled() bool {
	return c.ClientID != "" && c.TokenURL != ""
}

// NewTokenSource returns an auto-refreshing token source. Client
// credentials win over a static token; with neither it returns nil.
func NewTokenSource(ctx context.Context, staticToken string, cc ClientCredentials) oauth2.TokenSource {
	if cc.Enabled() {
		conf := &clientcredentials.Config{
			ClientID:     cc.ClientID,
			ClientSecret: cc.ClientSecret,
			TokenURL:     cc.TokenURL,
			Scopes:       cc.Scopes,
		}
		return conf.TokenSource(ctx)
	}
	if staticToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: staticToken, TokenType: "Bearer"})
	}
	return nil
}
