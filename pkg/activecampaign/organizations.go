package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Organization is a legacy organization record.
type Organization struct {
	ID               string `json:"id"                          yaml:"id"`
	Name             string `json:"name"                        yaml:"name"`
	CreatedTimestamp string `json:"created_timestamp,omitempty" yaml:"created_timestamp,omitempty"`
	UpdatedTimestamp string `json:"updated_timestamp,omitempty" yaml:"updated_timestamp,omitempty"`
	Links            Links  `json:"links,omitempty"             yaml:"links,omitempty"`
}

// OrganizationRequest is the body of an organization create or update.
type OrganizationRequest struct {
	Name string `json:"name"`
}

// Validate checks the request.
func (r *OrganizationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required),
	)
}
