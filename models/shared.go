package models

import (
	"fmt"
	"strings"
)

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from longitude/latitude.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Validate checks the point has exactly two in-range components.
func (g GeoPoint) Validate() error {
	if len(g.Coordinates) != 2 {
		return fmt.Errorf("coordinates must contain exactly [longitude, latitude]")
	}
	lng, lat := g.Coordinates[0], g.Coordinates[1]
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180,180]", lng)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90,90]", lat)
	}
	return nil
}

// Longitude returns the first coordinate, 0 when unset.
func (g GeoPoint) Longitude() float64 {
	if len(g.Coordinates) == 2 {
		return g.Coordinates[0]
	}
	return 0
}

// Latitude returns the second coordinate, 0 when unset.
func (g GeoPoint) Latitude() float64 {
	if len(g.Coordinates) == 2 {
		return g.Coordinates[1]
	}
	return 0
}

// Location is a GeoJSON point plus the human-readable address fields
// stored alongside it.
type Location struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
	Address     string    `bson:"address" json:"address"`
	District    string    `bson:"district" json:"district"`
}

// Point returns the embedded GeoJSON point.
func (l Location) Point() GeoPoint {
	return GeoPoint{Type: l.Type, Coordinates: l.Coordinates}
}

// Image is a single gallery entry. At most one image per record should
// carry IsPrimary.
type Image struct {
	URL       string `bson:"url" json:"url"`
	Alt       string `bson:"alt" json:"alt"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
}

// Rating is the denormalized review summary cached on a Place or
// Festival. Only the rating aggregator writes it.
type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// primaryImage picks the flagged image, falling back to the first.
func primaryImage(images []Image) string {
	for _, img := range images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures so handlers can
// surface them verbatim with a 400.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field failure and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// OrNil returns nil when no failures were recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
