package models

import (
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceCategories is the closed set of valid place categories.
var PlaceCategories = []string{
	"Historical", "Religious", "Natural", "Cultural", "Adventure", "Wildlife", "Architecture",
}

const (
	maxNameLen             = 100
	maxDescriptionLen      = 2000
	maxShortDescriptionLen = 300
)

// Place is a tourist destination record.
type Place struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name"`
	Description      string               `bson:"description" json:"description"`
	ShortDescription string               `bson:"shortDescription" json:"shortDescription"`
	Location         Location             `bson:"location" json:"location"`
	Images           []Image              `bson:"images" json:"images"`
	Category         string               `bson:"category" json:"category"`
	BestTimeToVisit  string               `bson:"bestTimeToVisit" json:"bestTimeToVisit"`
	EntryFee         string               `bson:"entryFee" json:"entryFee"`
	Timings          string               `bson:"timings" json:"timings"`
	Facilities       []string             `bson:"facilities" json:"facilities"`
	NearbyPlaces     []primitive.ObjectID `bson:"nearbyPlaces" json:"nearbyPlaces"`
	Rating           Rating               `bson:"rating" json:"rating"`
	IsActive         bool                 `bson:"isActive" json:"isActive"`
	Featured         bool                 `bson:"featured" json:"featured"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PlaceSummary is the trimmed projection used when populating
// nearby-place references on a detail response.
type PlaceSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Location Location           `bson:"location" json:"location"`
	Images   []Image            `bson:"images" json:"images"`
}

// NearbyPlace is a Place annotated with its distance from a query point.
type NearbyPlace struct {
	Place      `bson:",inline"`
	DistanceKm float64 `json:"distanceKm"`
}

// ApplyDefaults fills the fields the original schema defaulted.
func (p *Place) ApplyDefaults() {
	if p.Location.Type == "" {
		p.Location.Type = "Point"
	}
	if p.EntryFee == "" {
		p.EntryFee = "Free"
	}
	if p.Timings == "" {
		p.Timings = "24/7"
	}
}

// Validate enforces the schema rules on a fully-assembled place.
func (p *Place) Validate() error {
	v := &ValidationError{}
	if p.Name == "" {
		v.Add("name", "Place name is required")
	} else if utf8.RuneCountInString(p.Name) > maxNameLen {
		v.Add("name", "Name cannot be more than 100 characters")
	}
	if p.Description == "" {
		v.Add("description", "Description is required")
	} else if utf8.RuneCountInString(p.Description) > maxDescriptionLen {
		v.Add("description", "Description cannot be more than 2000 characters")
	}
	if p.ShortDescription == "" {
		v.Add("shortDescription", "Short description is required")
	} else if utf8.RuneCountInString(p.ShortDescription) > maxShortDescriptionLen {
		v.Add("shortDescription", "Short description cannot be more than 300 characters")
	}
	if err := p.Location.Point().Validate(); err != nil {
		v.Add("location.coordinates", "Invalid coordinates")
	}
	if p.Location.Address == "" {
		v.Add("location.address", "Address is required")
	}
	if p.Location.District == "" {
		v.Add("location.district", "District is required")
	}
	if !validCategory(p.Category, PlaceCategories) {
		v.Add("category", "Valid category is required")
	}
	if p.BestTimeToVisit == "" {
		v.Add("bestTimeToVisit", "Best time to visit is required")
	}
	for _, img := range p.Images {
		if img.URL == "" {
			v.Add("images", "Image URL is required")
			break
		}
	}
	return v.OrNil()
}

// PrimaryImage returns the flagged image URL, falling back to the first.
func (p *Place) PrimaryImage() string {
	return primaryImage(p.Images)
}

func validCategory(c string, set []string) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}
