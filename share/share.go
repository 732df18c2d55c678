// Package share builds the links a visitor uses to pass an itinerary on.
package share

import (
	"strings"

	"tirthyatra/utils"

	"github.com/skip2/go-qrcode"
)

// QRSize is the edge of a share QR code in pixels.
const QRSize = 256

// Message is the text pre-filled into a share. pageURL may be empty when the
// site address is unknown.
func Message(title, pageURL string) string {
	msg := "Check out this Tirth Yatra itinerary: " + title
	if pageURL != "" {
		msg += "\n" + pageURL
	}
	return msg
}

func WhatsAppURL(title, pageURL string) string {
	return "https://wa.me/?text=" + utils.EscapeComponent(Message(title, pageURL))
}

// PageURL joins the public site address and an itinerary id. It returns "" when
// siteURL is not configured.
func PageURL(siteURL, id string) string {
	if siteURL == "" {
		return ""
	}
	return strings.TrimRight(siteURL, "/") + "/itinerary/" + utils.EscapeComponent(id)
}

// QRCode encodes content as a PNG.
func QRCode(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, QRSize)
}
