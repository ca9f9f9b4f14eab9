package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Account represents an account (company) record.
type Account struct {
	ID               string              `json:"id"                         yaml:"id"`
	Name             string              `json:"name"                       yaml:"name"`
	AccountURL       string              `json:"accountUrl,omitempty"       yaml:"account_url,omitempty"`
	Owner            string              `json:"owner,omitempty"            yaml:"owner,omitempty"`
	ContactCount     FlexInt             `json:"contactCount,omitempty"     yaml:"contact_count,omitempty"`
	DealCount        FlexInt             `json:"dealCount,omitempty"        yaml:"deal_count,omitempty"`
	CreatedTimestamp string              `json:"createdTimestamp,omitempty" yaml:"created_timestamp,omitempty"`
	UpdatedTimestamp string              `json:"updatedTimestamp,omitempty" yaml:"updated_timestamp,omitempty"`
	Fields           []AccountFieldValue `json:"fields,omitempty"           yaml:"fields,omitempty"`
	Links            Links               `json:"links,omitempty"            yaml:"links,omitempty"`
}

// AccountFieldValue is a custom field value embedded in an account payload.
type AccountFieldValue struct {
	CustomFieldID FlexInt     `json:"customFieldId"           yaml:"custom_field_id"`
	FieldValue    interface{} `json:"fieldValue"              yaml:"field_value"`
	FieldCurrency string      `json:"fieldCurrency,omitempty" yaml:"field_currency,omitempty"`
}

// Validate checks the field value.
func (v AccountFieldValue) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.CustomFieldID, validation.Required),
	)
}

// AccountCreateRequest is the body of an account creation.
type AccountCreateRequest struct {
	Name       string              `json:"name"`
	AccountURL string              `json:"accountUrl,omitempty"`
	Owner      string              `json:"owner,omitempty"`
	Fields     []AccountFieldValue `json:"fields,omitempty"`
}

// Validate checks the request.
func (r *AccountCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.AccountURL, is.URL),
		validation.Field(&r.Fields),
	)
}

// AccountUpdateRequest is the body of an account update. Empty fields are
// left unchanged.
type AccountUpdateRequest struct {
	Name       string              `json:"name,omitempty"`
	AccountURL string              `json:"accountUrl,omitempty"`
	Owner      string              `json:"owner,omitempty"`
	Fields     []AccountFieldValue `json:"fields,omitempty"`
}

// Validate checks the request.
func (r *AccountUpdateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AccountURL, is.URL),
		validation.Field(&r.Fields),
	)
}

// AccountCustomFieldDatum is a custom field value stored on an account.
type AccountCustomFieldDatum struct {
	ID                string      `json:"id"                          yaml:"id"`
	CustomerAccountID string      `json:"customerAccountId"           yaml:"customer_account_id"`
	CustomFieldID     FlexInt     `json:"customFieldId"               yaml:"custom_field_id"`
	FieldValue        interface{} `json:"fieldValue"                  yaml:"field_value"`
	FieldCurrency     string      `json:"fieldCurrency,omitempty"     yaml:"field_currency,omitempty"`
	CreatedTimestamp  string      `json:"createdTimestamp,omitempty"  yaml:"created_timestamp,omitempty"`
	UpdatedTimestamp  string      `json:"updatedTimestamp,omitempty"  yaml:"updated_timestamp,omitempty"`
	Links             Links       `json:"links,omitempty"             yaml:"links,omitempty"`
}

// AccountCustomFieldValue is one entry of a bulk custom field write. The API
// creates the value or updates it when it already exists.
type AccountCustomFieldValue struct {
	CustomerAccountID string      `json:"customerAccountId"`
	CustomFieldID     string      `json:"customFieldId"`
	FieldValue        interface{} `json:"fieldValue"`
	FieldCurrency     string      `json:"fieldCurrency,omitempty"`
}

// Validate checks the value.
func (v AccountCustomFieldValue) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.CustomerAccountID, validation.Required),
		validation.Field(&v.CustomFieldID, validation.Required),
	)
}

// CustomFieldMeta describes a custom field definition of accounts or deals.
type CustomFieldMeta struct {
	ID               string      `json:"id"                         yaml:"id"`
	FieldLabel       string      `json:"fieldLabel"                 yaml:"field_label"`
	FieldType        string      `json:"fieldType"                  yaml:"field_type"`
	FieldOptions     []string    `json:"fieldOptions,omitempty"     yaml:"field_options,omitempty"`
	FieldDefault     interface{} `json:"fieldDefault,omitempty"     yaml:"field_default,omitempty"`
	IsFormVisible    FlexInt     `json:"isFormVisible,omitempty"    yaml:"is_form_visible,omitempty"`
	IsRequired       FlexInt     `json:"isRequired,omitempty"       yaml:"is_required,omitempty"`
	DisplayOrder     FlexInt     `json:"displayOrder,omitempty"     yaml:"display_order,omitempty"`
	Personalization  string      `json:"personalization,omitempty"  yaml:"personalization,omitempty"`
	KnownFieldID     string      `json:"knownFieldId,omitempty"     yaml:"known_field_id,omitempty"`
	HideFieldFlag    FlexInt     `json:"hideFieldFlag,omitempty"    yaml:"hide_field_flag,omitempty"`
	CreatedTimestamp string      `json:"createdTimestamp,omitempty" yaml:"created_timestamp,omitempty"`
	UpdatedTimestamp string      `json:"updatedTimestamp,omitempty" yaml:"updated_timestamp,omitempty"`
	Links            Links       `json:"links,omitempty"            yaml:"links,omitempty"`
}

// AccountsWithCustomFields is the merged result of walking every account page
// with custom field data included.
type AccountsWithCustomFields struct {
	Accounts         []Account                 `json:"accounts"         yaml:"accounts"`
	CustomFields     []AccountCustomFieldDatum `json:"customFields"     yaml:"custom_fields"`
	CustomFieldsMeta []CustomFieldMeta         `json:"customFieldsMeta" yaml:"custom_fields_meta"`
}
