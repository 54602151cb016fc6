package client

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const SSOCookieName = "hadoop-jwt"

// FetchToken asks the Knox token service for an access token using basic auth.
func FetchToken(ctx context.Context, tokenURL, user, password string) (string, error) {
	res, err := Do(ctx, "GET", tokenURL, RequestOptions{
		Auth:    BasicAuth{User: user, Password: password},
		Headers: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return "", err
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := res.Decode(&body); err != nil {
		return "", errors.Wrap(err, "error fetching token")
	}
	if body.AccessToken == "" {
		return "", errors.New("token response has no access_token")
	}
	return body.AccessToken, nil
}

// Login fetches a token for the endpoint user when SSO is enabled.
func (e *Endpoint) Login(ctx context.Context) error {
	if !e.UseSSO {
		return nil
	}
	if e.TokenURL == "" {
		return errors.New("sso is enabled but no token url is configured")
	}
	token, err := FetchToken(ctx, e.TokenURL, e.User, e.Password)
	if err != nil {
		return err
	}
	e.Token = token
	return nil
}

type TokenInfo struct {
	Subject   string    `json:"subject"`
	Issuer    string    `json:"issuer"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

// InspectToken decodes the claims of a JWT without verifying its signature,
// the shell only shows who the token belongs to and when it expires.
func InspectToken(token string) (*TokenInfo, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, "error parsing token")
	}

	info := &TokenInfo{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = time.Now().After(claims.ExpiresAt.Time)
	}
	return info, nil
}
