package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// List is a mailing list.
type List struct {
	ID             string `json:"id"                        yaml:"id"`
	Name           string `json:"name"                      yaml:"name"`
	StringID       string `json:"stringid"                  yaml:"stringid"`
	SenderURL      string `json:"sender_url,omitempty"      yaml:"sender_url,omitempty"`
	SenderReminder string `json:"sender_reminder,omitempty" yaml:"sender_reminder,omitempty"`
	CreatedDate    string `json:"cdate,omitempty"           yaml:"cdate,omitempty"`
	UpdatedDate    string `json:"udate,omitempty"           yaml:"udate,omitempty"`
	Links          Links  `json:"links,omitempty"           yaml:"links,omitempty"`
}

// ListCreateRequest is the body of a list creation.
type ListCreateRequest struct {
	Name                 string `json:"name"`
	StringID             string `json:"stringid"`
	SenderURL            string `json:"sender_url"`
	SenderReminder       string `json:"sender_reminder"`
	SendLastBroadcast    *int   `json:"send_last_broadcast,omitempty"`
	CarbonCopy           string `json:"carboncopy,omitempty"`
	SubscriptionNotify   string `json:"subscription_notify,omitempty"`
	UnsubscriptionNotify string `json:"unsubscription_notify,omitempty"`
}

// Validate checks the request.
func (r *ListCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.StringID, validation.Required),
		validation.Field(&r.SenderURL, validation.Required, is.URL),
		validation.Field(&r.SenderReminder, validation.Required),
		validation.Field(&r.SendLastBroadcast, validation.In(0, 1)),
	)
}
