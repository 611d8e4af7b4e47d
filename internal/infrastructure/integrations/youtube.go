package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/socialpulse/socialpulse-go/internal/domain/metrics"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// YouTubeProvider reads subscriber counts from the YouTube Data API v3.
type YouTubeProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *logging.ChanneledLogger
}

// NewYouTubeProvider creates a provider for the given API key. Callers
// must not construct one without a key; leave the brand unregistered
// instead.
func NewYouTubeProvider(apiKey string, timeout time.Duration, logger *logging.ChanneledLogger) *YouTubeProvider {
	return &YouTubeProvider{
		apiKey:  apiKey,
		baseURL: youtubeAPIBase,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (p *YouTubeProvider) Brand() metrics.Brand { return metrics.BrandYouTube }

type youtubeChannelsResponse struct {
	Items []struct {
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// FollowerCount resolves the handle to a channel and returns its
// subscriber count.
func (p *YouTubeProvider) FollowerCount(ctx context.Context, handle string) (int64, error) {
	query := url.Values{}
	query.Set("part", "statistics")
	query.Set("forHandle", handle)
	query.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/channels?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create youtube request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("youtube returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload youtubeChannelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode youtube response: %w", err)
	}
	if len(payload.Items) == 0 {
		return 0, fmt.Errorf("youtube channel not found for handle %s", handle)
	}

	count, err := strconv.ParseInt(payload.Items[0].Statistics.SubscriberCount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse subscriber count: %w", err)
	}

	if p.logger != nil {
		p.logger.Sync().Debug("Fetched YouTube subscriber count", "handle", handle, "count", count)
	}
	return count, nil
}
