// Package data holds the itinerary records compiled into the binary.
package data

import _ "embed"

//go:embed itineraries.json
var Itineraries []byte
