package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Deal represents a deal. Value is in cents.
type Deal struct {
	ID           string  `json:"id"                    yaml:"id"`
	Title        string  `json:"title"                 yaml:"title"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
	Value        FlexInt `json:"value"                 yaml:"value"`
	Currency     string  `json:"currency"              yaml:"currency"`
	Group        string  `json:"group,omitempty"       yaml:"group,omitempty"`
	Stage        string  `json:"stage,omitempty"       yaml:"stage,omitempty"`
	Owner        string  `json:"owner,omitempty"       yaml:"owner,omitempty"`
	Contact      string  `json:"contact,omitempty"     yaml:"contact,omitempty"`
	Account      string  `json:"account,omitempty"     yaml:"account,omitempty"`
	Percent      FlexInt `json:"percent,omitempty"     yaml:"percent,omitempty"`
	Status       FlexInt `json:"status,omitempty"      yaml:"status,omitempty"`
	CreatedDate  string  `json:"cdate,omitempty"       yaml:"cdate,omitempty"`
	ModifiedDate string  `json:"mdate,omitempty"       yaml:"mdate,omitempty"`
	Links        Links   `json:"links,omitempty"       yaml:"links,omitempty"`
}

// DealFieldValue is a custom field value embedded in a deal payload.
type DealFieldValue struct {
	CustomFieldID int         `json:"customFieldId"`
	FieldValue    interface{} `json:"fieldValue"`
	FieldCurrency string      `json:"fieldCurrency,omitempty"`
}

// Validate checks the field value.
func (v DealFieldValue) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.CustomFieldID, validation.Required),
	)
}

// DealRequest is the body of a deal create or update. Pointer fields are
// omitted when nil.
type DealRequest struct {
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Account     string           `json:"account,omitempty"`
	Contact     string           `json:"contact,omitempty"`
	Value       *int             `json:"value,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	Group       string           `json:"group,omitempty"`
	Stage       string           `json:"stage,omitempty"`
	Owner       string           `json:"owner,omitempty"`
	Percent     *int             `json:"percent,omitempty"`
	Status      *int             `json:"status,omitempty"`
	Fields      []DealFieldValue `json:"fields,omitempty"`
}

// Validate checks the request for a create.
func (r *DealRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Value, validation.NotNil, validation.Min(0)),
		validation.Field(&r.Currency, validation.Required, validation.Length(3, 3)),
		validation.Field(&r.Percent, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Fields),
	)
}

// ValidateUpdate checks the request for an update.
func (r *DealRequest) ValidateUpdate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value, validation.Min(0)),
		validation.Field(&r.Currency, validation.Length(3, 3)),
		validation.Field(&r.Percent, validation.Min(0), validation.Max(100)),
		validation.Field(&r.Fields),
	)
}

// DealStageMove moves every deal of a stage to another stage.
type DealStageMove struct {
	Stage string `json:"stage"`
}

// Validate checks the request.
func (r *DealStageMove) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Stage, validation.Required),
	)
}

// DealCustomFieldDatum is a custom field value stored on a deal.
type DealCustomFieldDatum struct {
	ID               string      `json:"id"                         yaml:"id"`
	DealID           string      `json:"dealId"                     yaml:"deal_id"`
	CustomFieldID    FlexInt     `json:"customFieldId"              yaml:"custom_field_id"`
	FieldValue       interface{} `json:"fieldValue"                 yaml:"field_value"`
	FieldCurrency    string      `json:"fieldCurrency,omitempty"    yaml:"field_currency,omitempty"`
	CreatedTimestamp string      `json:"createdTimestamp,omitempty" yaml:"created_timestamp,omitempty"`
	UpdatedTimestamp string      `json:"updatedTimestamp,omitempty" yaml:"updated_timestamp,omitempty"`
	Links            Links       `json:"links,omitempty"            yaml:"links,omitempty"`
}

// DealCustomFieldValueRequest creates a custom field value on a deal.
type DealCustomFieldValueRequest struct {
	DealID        string      `json:"dealId"`
	CustomFieldID string      `json:"custom_field_id"`
	FieldValue    interface{} `json:"fieldValue"`
	FieldCurrency string      `json:"fieldCurrency,omitempty"`
}

// Validate checks the request.
func (r *DealCustomFieldValueRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DealID, validation.Required),
		validation.Field(&r.CustomFieldID, validation.Required),
	)
}

// Pipeline is a deal group.
type Pipeline struct {
	ID          string   `json:"id"               yaml:"id"`
	Title       string   `json:"title"            yaml:"title"`
	Currency    string   `json:"currency"         yaml:"currency"`
	Stages      []string `json:"stages,omitempty" yaml:"stages,omitempty"`
	CreatedDate string   `json:"cdate,omitempty"  yaml:"cdate,omitempty"`
	UpdatedDate string   `json:"udate,omitempty"  yaml:"udate,omitempty"`
	Links       Links    `json:"links,omitempty"  yaml:"links,omitempty"`
}

// Stage is a deal stage within a pipeline.
type Stage struct {
	ID          string  `json:"id"              yaml:"id"`
	Title       string  `json:"title"           yaml:"title"`
	Group       string  `json:"group"           yaml:"group"`
	Order       FlexInt `json:"order"           yaml:"order"`
	Color       string  `json:"color,omitempty" yaml:"color,omitempty"`
	CreatedDate string  `json:"cdate,omitempty" yaml:"cdate,omitempty"`
	UpdatedDate string  `json:"udate,omitempty" yaml:"udate,omitempty"`
	Links       Links   `json:"links,omitempty" yaml:"links,omitempty"`
}
