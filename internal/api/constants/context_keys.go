package constants

// Context keys for validated requests
const (
	ContextKeyContact   = "contact"
	ContextKeyRequestID = "RequestID"
)
