package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/config"
)

// ErrUserNotFound is returned when the provider does not know the principal.
var ErrUserNotFound = errors.New("identity: user not found")

// roleOf reads the role attribute from a user's public metadata.
func roleOf(u *clerk.User) Role {
	if u == nil || len(u.PublicMetadata) == 0 {
		return DefaultRole
	}
	var meta struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(u.PublicMetadata, &meta); err != nil {
		return DefaultRole
	}
	return ParseRole(meta.Role)
}

// Client reads user profiles from the identity provider's backend API.
type Client struct {
	users  *user.Client
	logger *zap.Logger
}

// NewClient creates a provider client. An empty base URL keeps the SDK's
// default API endpoint.
func NewClient(cfg *config.ProviderConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	key := cfg.SecretKey
	cc := &user.ClientConfig{}
	cc.Key = &key
	cc.HTTPClient = &http.Client{Timeout: timeout}
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" {
		cc.URL = &base
	}

	return &Client{users: user.NewClient(cc), logger: logger}
}

// GetUser fetches one user profile. No retries.
func (c *Client) GetUser(ctx context.Context, userID string) (*clerk.User, error) {
	u, err := c.users.Get(ctx, userID)
	if err != nil {
		var apiErr *clerk.APIErrorResponse
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("identity: get user: %w", err)
	}
	return u, nil
}

// ResolveRole implements Resolver with one provider lookup per call.
func (c *Client) ResolveRole(ctx context.Context, userID string) (Role, error) {
	if userID == "" {
		return DefaultRole, nil
	}

	u, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.logger.Warn("session principal unknown to provider", zap.String("user_id", userID))
		} else {
			c.logger.Error("resolve role failed", zap.String("user_id", userID), zap.Error(err))
		}
		return "", err
	}
	return roleOf(u), nil
}
