package dwolla

// Version is reported in the User-Agent header.
const Version = "1.0.0"

const (
	// AcceptHeader is sent with every resource request.
	AcceptHeader = "application/vnd.dwolla.v1.hal+json"

	defaultUserAgent = "dwolla-v2-go " + Version
)
