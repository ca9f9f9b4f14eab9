package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// EventTrackingClient implements activecampaign.EventTrackingClient.
type EventTrackingClient struct {
	resource

	// tracker posts to the event endpoint; nil when actid and key are
	// not configured.
	tracker *http.Client
}

// NewEventTrackingClient creates a new event tracking client. tracker may be
// nil, in which case TrackEvent fails.
func NewEventTrackingClient(httpClient, tracker *http.Client, logger activecampaign.Logger) *EventTrackingClient {
	return &EventTrackingClient{
		resource: newResource(httpClient, logger),
		tracker:  tracker,
	}
}

// Status implements activecampaign.EventTrackingClient.Status.
func (c *EventTrackingClient) Status(ctx context.Context) (*activecampaign.TrackingStatus, error) {
	body, err := c.get(ctx, apiPath("/eventTracking"), nil)
	if err != nil {
		return nil, fmt.Errorf("getting event tracking status: %w", err)
	}

	return decodeEnvelope[activecampaign.TrackingStatus](body, "eventTracking")
}

// Toggle implements activecampaign.EventTrackingClient.Toggle.
func (c *EventTrackingClient) Toggle(ctx context.Context, enabled bool) (*activecampaign.TrackingStatus, error) {
	body, err := c.put(ctx, apiPath("/eventTracking"), "eventTracking", &activecampaign.TrackingStatus{Enabled: enabled})
	if err != nil {
		return nil, fmt.Errorf("toggling event tracking: %w", err)
	}

	return decodeEnvelope[activecampaign.TrackingStatus](body, "eventTracking")
}

// CreateEvent implements activecampaign.EventTrackingClient.CreateEvent.
func (c *EventTrackingClient) CreateEvent(ctx context.Context, name string) (*activecampaign.EventTrackingEvent, error) {
	err := requireID(name)
	if err != nil {
		return nil, err
	}

	body, err := c.post(ctx, apiPath("/eventTrackingEvents"), "eventTrackingEvent", &activecampaign.EventTrackingEvent{Name: name})
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}

	return decodeEnvelope[activecampaign.EventTrackingEvent](body, "eventTrackingEvent")
}

// DeleteEvent implements activecampaign.EventTrackingClient.DeleteEvent.
func (c *EventTrackingClient) DeleteEvent(ctx context.Context, name string) error {
	err := requireID(name)
	if err != nil {
		return err
	}

	err = c.delete(ctx, apiPath("/eventTrackingEvent/%s", name), nil)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	return nil
}

// ListEvents implements activecampaign.EventTrackingClient.ListEvents.
func (c *EventTrackingClient) ListEvents(
	ctx context.Context,
	params *activecampaign.ListParams,
) (*activecampaign.Page[activecampaign.EventTrackingEvent], error) {
	body, err := c.get(ctx, apiPath("/eventTrackingEvents"), params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	return decodePage[activecampaign.EventTrackingEvent](body, "eventTrackingEvents")
}

// TrackEvent implements activecampaign.EventTrackingClient.TrackEvent.
func (c *EventTrackingClient) TrackEvent(
	ctx context.Context,
	request *activecampaign.TrackEventRequest,
) (*activecampaign.TrackEventResult, error) {
	if c.tracker == nil {
		return nil, activecampaign.ErrEventTrackingNotConfigured
	}

	if request == nil {
		return nil, activecampaign.ErrInvalidRequest
	}

	err := validateRequest(request.Validate)
	if err != nil {
		return nil, err
	}

	form := url.Values{"event": []string{request.Event}}

	if request.EventData != "" {
		form.Set("eventdata", request.EventData)
	}

	if request.Email != "" {
		visit, err := json.Marshal(map[string]string{"email": request.Email})
		if err != nil {
			return nil, fmt.Errorf("encoding visit: %w", err)
		}

		form.Set("visit", string(visit))
	}

	resp, err := c.tracker.PostForm(ctx, "", form)
	if err != nil {
		return nil, fmt.Errorf("tracking event: %w", err)
	}

	err = http.CheckResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("tracking event: %w", err)
	}

	return decodeObject[activecampaign.TrackEventResult](resp.Body)
}

// SiteTrackingClient implements activecampaign.SiteTrackingClient.
type SiteTrackingClient struct {
	resource
}

// NewSiteTrackingClient creates a new site tracking client.
func NewSiteTrackingClient(httpClient *http.Client, logger activecampaign.Logger) *SiteTrackingClient {
	return &SiteTrackingClient{resource: newResource(httpClient, logger)}
}

// Status implements activecampaign.SiteTrackingClient.Status.
func (c *SiteTrackingClient) Status(ctx context.Context) (*activecampaign.TrackingStatus, error) {
	body, err := c.get(ctx, apiPath("/siteTracking"), nil)
	if err != nil {
		return nil, fmt.Errorf("getting site tracking status: %w", err)
	}

	return decodeEnvelope[activecampaign.TrackingStatus](body, "siteTracking")
}
