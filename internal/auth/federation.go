package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is what the external identity collaborator asserts about a
// principal. Subject is the only field the core trusts as unique.
type Identity struct {
	Subject  string
	Email    string
	Name     string
	PhotoURL string
}

// TokenVerifier abstracts the federated identity collaborator ("verify
// credential, return identity"). The core never inspects the credential
// itself; it only trusts the returned subject.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// GoogleVerifier validates Google-issued ID tokens. An empty audience skips
// the audience check (useful for local development).
type GoogleVerifier struct {
	Audience string
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{Audience: audience}
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.Audience)
	if err != nil {
		return nil, fmt.Errorf("id token validation failed: %w", err)
	}

	id := &Identity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		id.PhotoURL = picture
	}
	return id, nil
}
