package client

import (
	"context"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
)

// Client is the backend API used by the services.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Register(ctx context.Context, name, email, password string) (*RegisterResponse, error)
	Initialize(ctx context.Context, keys models.ProviderKeys) error
	GeneratePost(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
	ListPosts(ctx context.Context) ([]models.HistoryPost, error)
	DeletePost(ctx context.Context, id models.PostID) error
}

// TokenSource supplies the bearer token attached to each request.
// session.Store satisfies it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// LoginResponse is the body of POST /auth/login. APIKeys is present when the
// backend already holds the user's provider keys.
type LoginResponse struct {
	Token   string               `json:"token"`
	User    *models.User         `json:"user"`
	APIKeys *models.ProviderKeys `json:"api_keys,omitempty"`
	Warning string               `json:"warning,omitempty"`
}

// RegisterResponse is the body of POST /auth/register.
type RegisterResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type postsResponse struct {
	Posts []models.HistoryPost `json:"posts"`
}
