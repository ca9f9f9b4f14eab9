package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// Client implements the activecampaign.Client interface.
type Client struct {
	httpClient     *http.Client
	trackingClient *http.Client
	baseURL        string
	logger         activecampaign.Logger

	// Resource clients
	accounts      activecampaign.AccountsClient
	contacts      activecampaign.ContactsClient
	deals         activecampaign.DealsClient
	lists         activecampaign.ListsClient
	organizations activecampaign.OrganizationsClient
	tags          activecampaign.TagsClient
	users         activecampaign.UsersClient
	eventTracking activecampaign.EventTrackingClient
	siteTracking  activecampaign.SiteTrackingClient
}

// createHTTPClientOptions builds the options shared by the API and tracking
// HTTP clients.
func createHTTPClientOptions(config *activecampaign.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Retry != nil {
		httpOpts = append(httpOpts, http.WithRetryPolicy(config.Retry))
	}

	if config.RateLimit > 0 {
		httpOpts = append(httpOpts, http.WithRateLimit(config.RateLimit))
	}

	return httpOpts
}

// createTrackingClient builds the event tracking client, or nil when actid
// and key are not both configured.
func createTrackingClient(config *activecampaign.Config, httpOpts []http.Option) *http.Client {
	if !config.EventTrackingEnabled() {
		return nil
	}

	trackingURL := config.EventTrackingURL
	if trackingURL == "" {
		trackingURL = constants.EventTrackingURL
	}

	opts := append([]http.Option{}, httpOpts...)
	opts = append(opts, http.WithFormDefaults(url.Values{
		"actid": []string{config.EventTrackingActID},
		"key":   []string{config.EventTrackingKey},
	}))

	return http.NewClient(trackingURL, opts...)
}

// New creates a new ActiveCampaign client. The config is validated and
// copied; later changes to it have no effect.
func New(_ context.Context, config *activecampaign.Config) (*Client, error) {
	if config == nil {
		return nil, activecampaign.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	httpOpts := createHTTPClientOptions(config)

	logger := config.Logger
	if logger == nil {
		logger = activecampaign.NoopLogger{}
	}

	apiOpts := append([]http.Option{http.WithAPIToken(config.APIToken)}, httpOpts...)

	client := &Client{
		httpClient:     http.NewClient(config.APIURL, apiOpts...),
		trackingClient: createTrackingClient(config, httpOpts),
		baseURL:        config.APIURL,
		logger:         logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithHTTPClient creates a client over an existing HTTP client, e.g. one
// pointed at a test server. Event tracking is disabled.
func NewWithHTTPClient(httpClient *http.Client, logger activecampaign.Logger) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("%w: http client", activecampaign.ErrConfigRequired)
	}

	if logger == nil {
		logger = activecampaign.NoopLogger{}
	}

	client := &Client{
		httpClient: httpClient,
		logger:     logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource clients.
func (c *Client) initializeResourceClients() {
	c.accounts = NewAccountsClient(c.httpClient, c.logger)
	c.contacts = NewContactsClient(c.httpClient, c.logger)
	c.deals = NewDealsClient(c.httpClient, c.logger)
	c.lists = NewListsClient(c.httpClient, c.logger)
	c.organizations = NewOrganizationsClient(c.httpClient, c.logger)
	c.tags = NewTagsClient(c.httpClient, c.logger)
	c.users = NewUsersClient(c.httpClient, c.logger)
	c.eventTracking = NewEventTrackingClient(c.httpClient, c.trackingClient, c.logger)
	c.siteTracking = NewSiteTrackingClient(c.httpClient, c.logger)
}

// BaseURL returns the account URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Resource client accessors

// Accounts implements activecampaign.Client.Accounts.
func (c *Client) Accounts() activecampaign.AccountsClient {
	return c.accounts
}

// Contacts implements activecampaign.Client.Contacts.
func (c *Client) Contacts() activecampaign.ContactsClient {
	return c.contacts
}

// Deals implements activecampaign.Client.Deals.
func (c *Client) Deals() activecampaign.DealsClient {
	return c.deals
}

// Lists implements activecampaign.Client.Lists.
func (c *Client) Lists() activecampaign.ListsClient {
	return c.lists
}

// Organizations implements activecampaign.Client.Organizations.
func (c *Client) Organizations() activecampaign.OrganizationsClient {
	return c.organizations
}

// Tags implements activecampaign.Client.Tags.
func (c *Client) Tags() activecampaign.TagsClient {
	return c.tags
}

// Users implements activecampaign.Client.Users.
func (c *Client) Users() activecampaign.UsersClient {
	return c.users
}

// EventTracking implements activecampaign.Client.EventTracking.
func (c *Client) EventTracking() activecampaign.EventTrackingClient {
	return c.eventTracking
}

// SiteTracking implements activecampaign.Client.SiteTracking.
func (c *Client) SiteTracking() activecampaign.SiteTrackingClient {
	return c.siteTracking
}

var _ activecampaign.Client = (*Client)(nil)
