package graphql

import (
	"regexp"
	"strconv"
	"strings"
)

// Operation names in the dispatch table.
const (
	OpProduct        = "product"
	OpProducts       = "products"
	OpAttributes     = "attributes"
	OpAddToCart      = "addToCart"
	OpCart           = "cart"
	OpUpdateCart     = "updateCart"
	OpRemoveFromCart = "removeFromCart"
	OpPlaceOrder     = "placeOrder"
)

// Older storefront builds post bare query strings without operationName or
// variables; these patterns recover the arguments from the query text.
var (
	removeItemIDPattern   = regexp.MustCompile(`removeFromCart\s*\(\s*itemId:\s*"([^"]+)"`)
	updateItemIDPattern   = regexp.MustCompile(`updateCart\s*\(\s*itemId:\s*"([^"]+)"`)
	quantityChangePattern = regexp.MustCompile(`quantityChange:\s*(-?\d+)`)
	addProductIDPattern   = regexp.MustCompile(`addToCart\s*\(\s*productId:\s*"([^"]+)"`)
	quantityPattern       = regexp.MustCompile(`quantity:\s*(\d+)`)
)

// Infer resolves the operation for the request. An explicit operationName
// wins; otherwise the legacy shim sniffs the query text and backfills the
// variables it can extract. The empty string means no operation matched.
func Infer(req *Request) string {
	if op := strings.TrimSpace(req.OperationName); op != "" {
		// Legacy clients capitalized the add mutation's operation name.
		if op == "AddToCart" {
			return OpAddToCart
		}
		return op
	}

	query := req.Query
	if strings.Contains(query, "mutation") {
		switch {
		case strings.Contains(query, OpRemoveFromCart):
			backfillString(req, "itemId", removeItemIDPattern, query)
			return OpRemoveFromCart
		case strings.Contains(query, OpUpdateCart):
			backfillString(req, "itemId", updateItemIDPattern, query)
			backfillInt(req, "quantityChange", quantityChangePattern, query)
			return OpUpdateCart
		case strings.Contains(query, OpAddToCart):
			backfillString(req, "productId", addProductIDPattern, query)
			backfillInt(req, "quantity", quantityPattern, query)
			return OpAddToCart
		case strings.Contains(query, OpPlaceOrder):
			return OpPlaceOrder
		}
		return ""
	}
	if strings.Contains(query, OpCart) {
		return OpCart
	}
	return ""
}

func backfillString(req *Request, key string, pattern *regexp.Regexp, query string) {
	if matches := pattern.FindStringSubmatch(query); matches != nil {
		req.setDefault(key, matches[1])
	}
}

func backfillInt(req *Request, key string, pattern *regexp.Regexp, query string) {
	if matches := pattern.FindStringSubmatch(query); matches != nil {
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return
		}
		// Stored as float64 to match values arriving through JSON.
		req.setDefault(key, float64(n))
	}
}
