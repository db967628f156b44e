package handler

const (
	// APIPath is the prefix of every JSON route.
	APIPath = "/api"

	// HeaderIfMatch carries the expected version of a versioned document.
	HeaderIfMatch = "If-Match"

	// HeaderVersion is set on responses of versioned documents.
	HeaderVersion = "X-Version"

	// ErrNilDepsFatalLogMsg is used if the app or a required dependency is nil.
	ErrNilDepsFatalLogMsg = "app, db or auth service is nil"
)
