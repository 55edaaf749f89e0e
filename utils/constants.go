package utils

// Context keys attached to request-scoped contexts
const (
	RequestIDKey  = "request_id"
	UserAgentKey  = "user_agent"
	IPAddressKey  = "ip_address"
	EndpointKey   = "endpoint"
	TimeoutKey    = "timeout"
	CancelFuncKey = "cancel_func"
)

// Truthy values accepted when coercing free-form boolean columns
// (includes the localized affirmatives the legacy data carries)
var TruthyValues = []string{"true", "1", "yes", "да", "истина"}
