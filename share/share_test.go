package share

import (
	"bytes"
	"image/png"
	"net/url"
	"strings"
	"testing"
)

func TestMessage(t *testing.T) {
	if got := Message("Palitana", ""); got != "Check out this Tirth Yatra itinerary: Palitana" {
		t.Errorf("Message = %q", got)
	}
	got := Message("Palitana", "https://yatra.example/itinerary/gujarat-palitana-1d")
	if got != "Check out this Tirth Yatra itinerary: Palitana\nhttps://yatra.example/itinerary/gujarat-palitana-1d" {
		t.Errorf("Message = %q", got)
	}
}

func TestWhatsAppURL(t *testing.T) {
	page := PageURL("https://yatra.example/", "tn-north-2d")
	if page != "https://yatra.example/itinerary/tn-north-2d" {
		t.Fatalf("PageURL = %q", page)
	}
	link := WhatsAppURL("2 Day Northern Tamil Nadu Tirths", page)
	text, ok := strings.CutPrefix(link, "https://wa.me/?text=")
	if !ok {
		t.Fatalf("unexpected link %q", link)
	}
	if strings.ContainsAny(text, " +\n") {
		t.Errorf("message not fully escaped: %q", text)
	}
	decoded, err := url.PathUnescape(text)
	if err != nil {
		t.Fatal(err)
	}
	if decoded != Message("2 Day Northern Tamil Nadu Tirths", page) {
		t.Errorf("decoded = %q", decoded)
	}
}

func TestPageURLWithoutSite(t *testing.T) {
	if got := PageURL("", "x"); got != "" {
		t.Errorf("PageURL = %q", got)
	}
}

func TestQRCode(t *testing.T) {
	raw, err := QRCode(WhatsAppURL("Palitana", ""))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != QRSize || b.Dy() != QRSize {
		t.Errorf("size = %v", b)
	}
}
