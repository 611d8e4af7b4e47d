package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
)

const githubAPIBase = "https://api.github.com"

// GitHubProvider reads follower counts from the GitHub REST API. A token is
// optional; it only raises the rate limit.
type GitHubProvider struct {
	token   string
	baseURL string
	client  *http.Client
	logger  *logging.ChanneledLogger
}

func NewGitHubProvider(token string, timeout time.Duration, logger *logging.ChanneledLogger) *GitHubProvider {
	return &GitHubProvider{
		token:   token,
		baseURL: githubAPIBase,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (p *GitHubProvider) Brand() metrics.Brand { return metrics.BrandGitHub }

type githubUserResponse struct {
	Followers int64 `json:"followers"`
}

// FollowerCount returns the follower count for a GitHub user. Handles may
// carry the dashboard's leading @.
func (p *GitHubProvider) FollowerCount(ctx context.Context, handle string) (int64, error) {
	user := strings.TrimPrefix(handle, "@")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/users/"+user, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("github returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload githubUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode github response: %w", err)
	}

	if p.logger != nil {
		p.logger.Sync().Debug("Fetched GitHub follower count", "user", user, "count", payload.Followers)
	}
	return payload.Followers, nil
}
