package otel

const (
	InstrumentationVersion = "0.1.0"

	TokenExchange   = "optimus_apitoken_token_exchange"   // counter
	Request         = "optimus_apitoken_request"          // counter
	RequestDuration = "optimus_apitoken_request_duration" // histogram
	Error           = "optimus_apitoken_error"            // counter
)
