package types

// DataEnvelope is the success shape for dispatched operations:
// {"data": {"<operationName>": payload}}.
type DataEnvelope struct {
	Data map[string]any `json:"data"`
}

// GraphQLError carries a single failure message.
type GraphQLError struct {
	Message string `json:"message"`
}

// ErrorsEnvelope is the failure shape: {"errors": [{"message": ...}]}.
type ErrorsEnvelope struct {
	Errors []GraphQLError `json:"errors"`
}

// SuccessEnvelope wraps plain REST payloads (health endpoints).
type SuccessEnvelope struct {
	Data any `json:"data"`
}
