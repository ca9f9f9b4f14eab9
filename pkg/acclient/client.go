package acclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/activecampaign/internal/client"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// New creates a new ActiveCampaign API client. The account URL is
// normalized: trailing slashes are trimmed and https:// is added when no
// scheme is given. config itself is not modified.
func New(ctx context.Context, config *activecampaign.Config) (activecampaign.Client, error) {
	if config == nil {
		return nil, activecampaign.ErrConfigRequired
	}

	if strings.TrimSpace(config.APIURL) == "" {
		return nil, activecampaign.ErrAPIURLRequired
	}

	if config.APIToken == "" {
		return nil, activecampaign.ErrAPITokenRequired
	}

	normalized := *config
	normalized.APIURL = NormalizeURL(config.APIURL)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a new client with an account URL and API token.
func NewWithToken(ctx context.Context, apiURL, token string) (activecampaign.Client, error) {
	return New(ctx, &activecampaign.Config{
		APIURL:   apiURL,
		APIToken: token,
	})
}

// NewWithRetry creates a new client that retries transient failures with
// the default policy.
func NewWithRetry(ctx context.Context, apiURL, token string) (activecampaign.Client, error) {
	return New(ctx, &activecampaign.Config{
		APIURL:   apiURL,
		APIToken: token,
		Retry:    activecampaign.DefaultRetryPolicy(),
	})
}

// NormalizeURL trims whitespace, trailing slashes and a trailing /api/3, and
// adds https:// when no scheme is given.
func NormalizeURL(apiURL string) string {
	normalized := strings.TrimSpace(apiURL)
	normalized = strings.TrimRight(normalized, "/")
	normalized = strings.TrimSuffix(normalized, "/api/3")

	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}
