package models

// Itinerary is a multi-day Tirth Yatra plan shared by a community member.
type Itinerary struct {
	ID              string   `json:"id" bson:"id" yaml:"id"`
	Title           string   `json:"title" bson:"title" yaml:"title"`
	Duration        string   `json:"duration" bson:"duration" yaml:"duration"` // free text, e.g. "2 Days"
	States          []string `json:"states" bson:"states" yaml:"states"`
	Author          string   `json:"author" bson:"author" yaml:"author"`
	AuthorInstagram string   `json:"authorInstagram,omitempty" bson:"authorInstagram,omitempty" yaml:"authorInstagram,omitempty"`
	Description     string   `json:"description" bson:"description" yaml:"description"`
	Days            []Day    `json:"days" bson:"days" yaml:"days"`
}

type Day struct {
	Day   int    `json:"day" bson:"day" yaml:"day"`
	Stops []Stop `json:"stops" bson:"stops" yaml:"stops"`
}

type Stop struct {
	Name        string   `json:"name" bson:"name" yaml:"name"`
	Type        string   `json:"type" bson:"type" yaml:"type"`
	Facilities  []string `json:"facilities" bson:"facilities" yaml:"facilities"`
	Description string   `json:"description" bson:"description" yaml:"description"`
	MapsLink    string   `json:"mapsLink" bson:"mapsLink" yaml:"mapsLink"`
}

// Stop types offered by the submission form.
const (
	StopTirth    = "Tirth"
	StopTemple   = "Temple"
	StopCaveHill = "Cave/Hill"
	StopTravel   = "Travel"
)

var StopTypes = []string{StopTirth, StopTemple, StopCaveHill, StopTravel}

const (
	FacilityDharmshala  = "Dharmshala"
	FacilityBhojanshala = "Bhojanshala"
)

var Facilities = []string{FacilityDharmshala, FacilityBhojanshala}

// Normalize replaces nil slices with empty ones so records encode as [] rather than null.
func (it *Itinerary) Normalize() {
	if it.States == nil {
		it.States = []string{}
	}
	if it.Days == nil {
		it.Days = []Day{}
	}
	for i := range it.Days {
		if it.Days[i].Stops == nil {
			it.Days[i].Stops = []Stop{}
		}
		for j := range it.Days[i].Stops {
			if it.Days[i].Stops[j].Facilities == nil {
				it.Days[i].Stops[j].Facilities = []string{}
			}
		}
	}
}
