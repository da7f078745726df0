// Package graphql implements the storefront's POST /graphql endpoint: a
// fixed dispatch table of cart, catalog, and order operations behind
// GraphQL-shaped envelopes. Queries are not parsed as GraphQL; the
// operation name selects the handler and variables carry the arguments.
package graphql

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Request is the body posted by the storefront.
type Request struct {
	Query         string         `json:"query" validate:"required"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

func (r *Request) setDefault(key string, value any) {
	if r.Variables == nil {
		r.Variables = map[string]any{}
	}
	if existing, ok := r.Variables[key]; ok {
		switch v := existing.(type) {
		case string:
			if v != "" {
				return
			}
		case nil:
		default:
			return
		}
	}
	r.Variables[key] = value
}

func stringVar(vars map[string]any, key string) string {
	value, ok := vars[key]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func stringPtrVar(vars map[string]any, key string) *string {
	if s, ok := vars[key].(string); ok {
		return &s
	}
	return nil
}

func intVar(vars map[string]any, key string) int {
	value, ok := vars[key]
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// attributesVar accepts the attribute selection either as a JSON object or
// as a pre-serialized string, returning the serialized form.
func attributesVar(vars map[string]any, key string) *string {
	value, ok := vars[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return &v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		s := string(encoded)
		return &s
	}
}
