package utils

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// EscapeComponent percent-encodes s for use inside a mailto: or share URL.
// Spaces become %20, never '+', which mail clients would show literally.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ClientIP is the remote address without its port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
