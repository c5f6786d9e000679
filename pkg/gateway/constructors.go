package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/dmitrymomot/socialauth/pkg/identity"
)

// Built-in provider identifiers.
const (
	ProviderGoogle   = "google"
	ProviderGitHub   = "github"
	ProviderLinkedIn = "linkedin"
	ProviderFacebook = "facebook"
)

// GoogleConstructor returns the gateway constructor for Google sign-in.
func GoogleConstructor() Constructor {
	return NewOAuth2Constructor(
		ProviderGoogle,
		endpoints.Google,
		[]string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		fetchGoogleProfile,
		oauth2.AccessTypeOnline,
	)
}

// GitHubConstructor returns the gateway constructor for GitHub sign-in.
func GitHubConstructor() Constructor {
	return NewOAuth2Constructor(
		ProviderGitHub,
		endpoints.GitHub,
		[]string{"read:user", "user:email"},
		fetchGitHubProfile,
	)
}

// LinkedInConstructor returns the gateway constructor for LinkedIn
// sign-in, using its OpenID Connect userinfo endpoint.
func LinkedInConstructor() Constructor {
	return NewOAuth2Constructor(
		ProviderLinkedIn,
		endpoints.LinkedIn,
		[]string{"openid", "profile", "email"},
		fetchLinkedInProfile,
	)
}

// FacebookConstructor returns the gateway constructor for Facebook sign-in.
func FacebookConstructor() Constructor {
	return NewOAuth2Constructor(
		ProviderFacebook,
		endpoints.Facebook,
		[]string{"email", "public_profile"},
		fetchFacebookProfile,
	)
}

func fetchGoogleProfile(ctx context.Context, client *http.Client, accessToken string) (identity.Profile, error) {
	var u struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := getJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", accessToken, nil, &u); err != nil {
		return identity.Profile{}, fmt.Errorf("fetch google user: %w", err)
	}

	return identity.Profile{
		ProviderUserID: u.ID,
		Email:          u.Email,
		DisplayName:    u.Name,
		AvatarURL:      u.Picture,
	}, nil
}

func fetchGitHubProfile(ctx context.Context, client *http.Client, accessToken string) (identity.Profile, error) {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}

	var u struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, "https://api.github.com/user", accessToken, headers, &u); err != nil {
		return identity.Profile{}, fmt.Errorf("fetch github user: %w", err)
	}

	// The public profile email is often unset; the emails endpoint holds
	// the primary address.
	email := u.Email
	if email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := getJSON(ctx, client, "https://api.github.com/user/emails", accessToken, headers, &emails); err != nil {
			return identity.Profile{}, fmt.Errorf("fetch github emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				email = e.Email
				break
			}
		}
		if email == "" {
			for _, e := range emails {
				if e.Verified {
					email = e.Email
					break
				}
			}
		}
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}

	return identity.Profile{
		ProviderUserID: strconv.FormatInt(u.ID, 10),
		Email:          email,
		DisplayName:    name,
		AvatarURL:      u.AvatarURL,
	}, nil
}

func fetchLinkedInProfile(ctx context.Context, client *http.Client, accessToken string) (identity.Profile, error) {
	var u struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := getJSON(ctx, client, "https://api.linkedin.com/v2/userinfo", accessToken, nil, &u); err != nil {
		return identity.Profile{}, fmt.Errorf("fetch linkedin user: %w", err)
	}

	return identity.Profile{
		ProviderUserID: u.Sub,
		Email:          u.Email,
		DisplayName:    u.Name,
		AvatarURL:      u.Picture,
	}, nil
}

func fetchFacebookProfile(ctx context.Context, client *http.Client, accessToken string) (identity.Profile, error) {
	var u struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := getJSON(ctx, client, "https://graph.facebook.com/v19.0/me?fields=id,name,email,picture", accessToken, nil, &u); err != nil {
		return identity.Profile{}, fmt.Errorf("fetch facebook user: %w", err)
	}

	return identity.Profile{
		ProviderUserID: u.ID,
		Email:          u.Email,
		DisplayName:    u.Name,
		AvatarURL:      u.Picture.Data.URL,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, url, accessToken string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
