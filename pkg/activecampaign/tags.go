package activecampaign

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
)

// Tag is a contact or template tag.
type Tag struct {
	ID              string  `json:"id"                         yaml:"id"`
	Tag             string  `json:"tag"                        yaml:"tag"`
	TagType         string  `json:"tagType"                    yaml:"tag_type"`
	Description     string  `json:"description,omitempty"      yaml:"description,omitempty"`
	SubscriberCount FlexInt `json:"subscriber_count,omitempty" yaml:"subscriber_count,omitempty"`
	CreatedDate     string  `json:"cdate,omitempty"            yaml:"cdate,omitempty"`
	Links           Links   `json:"links,omitempty"            yaml:"links,omitempty"`
}

// TagCreateRequest is the body of a tag creation. An empty TagType creates
// a contact tag.
type TagCreateRequest struct {
	Tag         string `json:"tag"`
	TagType     string `json:"tagType"`
	Description string `json:"description,omitempty"`
}

// Validate checks the request.
func (r *TagCreateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Tag, validation.Required),
		validation.Field(&r.TagType, validation.In(constants.TagTypeContact, constants.TagTypeTemplate)),
	)
}
