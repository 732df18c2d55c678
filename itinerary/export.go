package itinerary

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strings"

	"tirthyatra/models"
	"tirthyatra/share"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
)

// GET /itinerary/:id/share.png
func SharePNG(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, ok := lookup(w, r, ps)
	if !ok {
		return
	}
	png, err := share.QRCode(share.WhatsAppURL(it.Title, pageURL(r, it.ID)))
	if err != nil {
		log.Printf("[itinerary] qr id=%s: %v", it.ID, err)
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

// GET /itinerary/:id/print.pdf
func PrintItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	it, ok := lookup(w, r, ps)
	if !ok {
		return
	}
	pdf, err := RenderPDF(it, pageURL(r, it.ID))
	if err != nil {
		log.Printf("[itinerary] pdf id=%s: %v", it.ID, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+it.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// RenderPDF lays an itinerary out for print, with a QR code pointing at its page.
func RenderPDF(it models.Itinerary, pageURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	// Core fonts are cp1252; anything outside it prints as '?'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 20)
	pdf.MultiCell(140, 9, tr(it.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(140, 6, tr(fmt.Sprintf("%s  |  %s\nShared by %s",
		it.Duration, strings.Join(it.States, ", "), it.Author)), "", "L", false)
	pdf.Ln(3)
	pdf.MultiCell(0, 6, tr(it.Description), "", "L", false)

	if pageURL != "" {
		qr, err := share.QRCode(pageURL)
		if err != nil {
			return nil, fmt.Errorf("qr: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
		pdf.ImageOptions("qr", 160, 18, 30, 30, false, opts, 0, "")
	}

	for _, day := range it.Days {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 15)
		pdf.CellFormat(0, 9, fmt.Sprintf("Day %d", day.Day), "B", 1, "L", false, 0, "")
		pdf.Ln(2)
		for i, stop := range day.Stops {
			pdf.SetFont("Arial", "B", 12)
			pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s (%s)", i+1, stop.Name, stop.Type)), "", "L", false)
			pdf.SetFont("Arial", "", 10)
			if len(stop.Facilities) > 0 {
				pdf.MultiCell(0, 5, tr("Facilities: "+strings.Join(stop.Facilities, ", ")), "", "L", false)
			}
			if stop.Description != "" {
				pdf.MultiCell(0, 5, tr(stop.Description), "", "L", false)
			}
			if stop.MapsLink != "" {
				pdf.SetTextColor(30, 90, 200)
				pdf.CellFormat(0, 5, "View on Maps", "", 1, "L", false, 0, stop.MapsLink)
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(2)
		}
	}

	pdf.SetAutoPageBreak(false, 0)
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 10, tr("Jain Tirth Yatra. Built for the community."), "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
