package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API locations and headers.
const (
	// APIVersionPath is the path prefix of every v3 endpoint.
	APIVersionPath = "/api/3"

	// EventTrackingURL is the fixed endpoint used for event tracking.
	EventTrackingURL = "https://trackcmp.net/event"

	// HeaderAPIToken carries the account API token.
	HeaderAPIToken = "Api-Token"

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "activecampaign-go/1.0"

	// ContentTypeJSON is used for JSON request and response bodies.
	ContentTypeJSON = "application/json"

	// ContentTypeForm is used for event tracking posts.
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry defaults.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 10

	// DefaultRetryDelay is the base delay of the linear backoff schedule.
	DefaultRetryDelay = 500 * time.Millisecond
)

// Pagination limits.
const (
	// DefaultListLimit is the page size the API uses when none is given.
	DefaultListLimit = 20

	// DefaultAggregatePageSize is the page size used when walking every page.
	DefaultAggregatePageSize = 100
)

// Contact list subscription statuses.
const (
	// ListStatusActive subscribes a contact to a list.
	ListStatusActive = 1

	// ListStatusUnsubscribed unsubscribes a contact from a list.
	ListStatusUnsubscribed = 2
)

// Tag types.
const (
	// TagTypeContact is the default tag type.
	TagTypeContact = "contact"

	// TagTypeTemplate tags templates.
	TagTypeTemplate = "template"
)

// Output formats.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// IndentSize is the number of spaces for JSON and YAML indentation.
	IndentSize = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// SecretVisibleChars is how many leading and trailing characters of a
	// masked secret are shown.
	SecretVisibleChars = 4
)
