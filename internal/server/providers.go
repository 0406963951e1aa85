package server

import (
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/shared"
)

// Provider profile endpoints.
const (
	GoogleProfileURL   = "https://openidconnect.googleapis.com/v1/userinfo"
	FacebookProfileURL = "https://graph.facebook.com/me?fields=id,name,email"
	TwitterProfileURL  = "https://api.twitter.com/2/users/me"
)

var twitterEndpoint = oauth2.Endpoint{
	AuthURL:   "https://twitter.com/i/oauth2/authorize",
	TokenURL:  "https://api.twitter.com/2/oauth2/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

// GoogleProvider signs users in with Google's OpenID Connect userinfo.
func GoogleProvider(c shared.ProviderConfig) Provider {
	return Provider{
		Name:       "google",
		Path:       "/auth/google-oauth",
		Config:     oauthConfig(c, endpoints.Google, "openid", "email", "profile"),
		ProfileURL: GoogleProfileURL,
		Decode: func(body []byte) (models.ProviderProfile, error) {
			p, err := decodeJSON[struct {
				Sub   string `json:"sub"`
				Name  string `json:"name"`
				Email string `json:"email"`
			}](body)
			return models.ProviderProfile{Name: p.Name, Email: p.Email, Password: p.Sub}, err
		},
	}
}

// FacebookProvider signs users in with the Graph API profile.
func FacebookProvider(c shared.ProviderConfig) Provider {
	return Provider{
		Name:       "facebook",
		Path:       "/auth/facebook",
		Config:     oauthConfig(c, endpoints.Facebook, "email"),
		ProfileURL: FacebookProfileURL,
		Decode: func(body []byte) (models.ProviderProfile, error) {
			p, err := decodeJSON[struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
			}](body)
			return models.ProviderProfile{Name: p.Name, Email: p.Email, Password: p.ID}, err
		},
	}
}

// TwitterProvider signs users in with OAuth 2.0 and PKCE.
//
// Twitter does not share email addresses with this scope, so the handle stands in for one.
func TwitterProvider(c shared.ProviderConfig) Provider {
	return Provider{
		Name:       "twitter",
		Path:       "/auth/twitter",
		Config:     oauthConfig(c, twitterEndpoint, "users.read", "tweet.read"),
		PKCE:       true,
		ProfileURL: TwitterProfileURL,
		Decode: func(body []byte) (models.ProviderProfile, error) {
			p, err := decodeJSON[struct {
				Data struct {
					ID       string `json:"id"`
					Name     string `json:"name"`
					Username string `json:"username"`
				} `json:"data"`
			}](body)
			if err != nil || p.Data.Username == "" {
				return models.ProviderProfile{}, err
			}
			return models.ProviderProfile{
				Name:     p.Data.Name,
				Email:    fmt.Sprintf("%s@twitter.com", p.Data.Username),
				Password: p.Data.ID,
			}, nil
		},
	}
}

func oauthConfig(c shared.ProviderConfig, endpoint oauth2.Endpoint, scopes ...string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
}
