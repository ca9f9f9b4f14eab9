package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// TrackingStatus reports whether event or site tracking is enabled.
type TrackingStatus struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// EventTrackingEvent is a registered event name.
type EventTrackingEvent struct {
	Name  string `json:"name"            yaml:"name"`
	Links Links  `json:"links,omitempty" yaml:"links,omitempty"`
}

// TrackEventRequest records an occurrence of a named event.
type TrackEventRequest struct {
	Event     string
	EventData string
	// Email identifies the visitor. Empty sends no visit.
	Email string
}

// Validate checks the request.
func (r *TrackEventRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Event, validation.Required),
		validation.Field(&r.Email, is.EmailFormat),
	)
}

// TrackEventResult is the tracking endpoint's reply.
type TrackEventResult struct {
	Success FlexInt `json:"success"           yaml:"success"`
	Message string  `json:"message,omitempty" yaml:"message,omitempty"`
}
