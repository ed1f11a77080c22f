package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	jwttoken "rbconsole/internal/jwt_token"
	"rbconsole/internal/models"
)

// Login exchanges credentials for a token and stores it. The backend expects
// an OAuth2 password form, so the email travels as "username".
func (c *Client) Login(ctx context.Context, email, password string) (models.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	cl := call{
		method:      "POST",
		path:        "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		anonymous:   true,
	}
	body, err := c.raw(ctx, cl)
	if err != nil {
		return models.Token{}, err
	}
	tok, err := normalizeToken(cl.endpoint(), body)
	if err != nil {
		return models.Token{}, c.shape(ctx, err)
	}
	if c.tokens != nil {
		if err := c.tokens.SetToken(ctx, tok.AccessToken); err != nil {
			return models.Token{}, fmt.Errorf("store token: %w", err)
		}
	}
	c.logger.InfoContext(ctx, "logged in", "email", email)
	return tok, nil
}

// Logout forgets the stored token. The backend keeps no session to revoke.
func (c *Client) Logout(ctx context.Context) error {
	if c.tokens == nil {
		return nil
	}
	return c.tokens.ClearToken(ctx)
}

// WhoAmI decodes the stored token without calling the backend.
func (c *Client) WhoAmI(ctx context.Context) (jwttoken.Info, error) {
	if c.tokens == nil {
		return jwttoken.Info{}, ErrUnauthorized
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return jwttoken.Info{}, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return jwttoken.Info{}, ErrUnauthorized
	}
	return jwttoken.Inspect(token)
}
