package api

import (
	"net/url"
	"strings"
)

// PercentEncode escapes s for a query string, using %20 instead of the
// plus sign so strict services accept it.
func PercentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
