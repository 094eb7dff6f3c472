package models

import (
	"math"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FestivalCategories is the closed set of valid festival categories.
var FestivalCategories = []string{
	"Religious", "Cultural", "Harvest", "Seasonal", "Traditional", "Modern",
}

// DateRange is the festival's start/end window.
type DateRange struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Ritual is a named ceremony performed during a festival.
type Ritual struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
}

// ContactInfo holds the optional organizer contact record.
type ContactInfo struct {
	Organizer string `bson:"organizer" json:"organizer"`
	Phone     string `bson:"phone" json:"phone"`
	Email     string `bson:"email" json:"email"`
}

// Festival is a cultural event record.
type Festival struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description" json:"description"`
	ShortDescription   string             `bson:"shortDescription" json:"shortDescription"`
	Date               DateRange          `bson:"date" json:"date"`
	Location           Location           `bson:"location" json:"location"`
	Images             []Image            `bson:"images" json:"images"`
	Category           string             `bson:"category" json:"category"`
	Significance       string             `bson:"significance" json:"significance"`
	Rituals            []Ritual           `bson:"rituals" json:"rituals"`
	SpecialAttractions []string           `bson:"specialAttractions" json:"specialAttractions"`
	EntryFee           string             `bson:"entryFee" json:"entryFee"`
	Timings            string             `bson:"timings" json:"timings"`
	ContactInfo        ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	Rating             Rating             `bson:"rating" json:"rating"`
	IsActive           bool               `bson:"isActive" json:"isActive"`
	Featured           bool               `bson:"featured" json:"featured"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ApplyDefaults fills the fields the original schema defaulted.
func (f *Festival) ApplyDefaults() {
	if f.Location.Type == "" {
		f.Location.Type = "Point"
	}
	if f.EntryFee == "" {
		f.EntryFee = "Free"
	}
	if f.Timings == "" {
		f.Timings = "All day"
	}
}

// Validate enforces the schema rules on a fully-assembled festival.
func (f *Festival) Validate() error {
	v := &ValidationError{}
	if f.Name == "" {
		v.Add("name", "Festival name is required")
	} else if utf8.RuneCountInString(f.Name) > maxNameLen {
		v.Add("name", "Name cannot be more than 100 characters")
	}
	if f.Description == "" {
		v.Add("description", "Description is required")
	} else if utf8.RuneCountInString(f.Description) > maxDescriptionLen {
		v.Add("description", "Description cannot be more than 2000 characters")
	}
	if f.ShortDescription == "" {
		v.Add("shortDescription", "Short description is required")
	} else if utf8.RuneCountInString(f.ShortDescription) > maxShortDescriptionLen {
		v.Add("shortDescription", "Short description cannot be more than 300 characters")
	}
	if f.Date.Start.IsZero() {
		v.Add("date.start", "Start date is required")
	}
	if f.Date.End.IsZero() {
		v.Add("date.end", "End date is required")
	}
	if !f.Date.Start.IsZero() && !f.Date.End.IsZero() && f.Date.End.Before(f.Date.Start) {
		v.Add("date.end", "End date must not be before start date")
	}
	if err := f.Location.Point().Validate(); err != nil {
		v.Add("location.coordinates", "Invalid coordinates")
	}
	if f.Location.Address == "" {
		v.Add("location.address", "Address is required")
	}
	if f.Location.District == "" {
		v.Add("location.district", "District is required")
	}
	if !validCategory(f.Category, FestivalCategories) {
		v.Add("category", "Valid category is required")
	}
	if f.Significance == "" {
		v.Add("significance", "Significance is required")
	}
	for _, r := range f.Rituals {
		if r.Name == "" || r.Description == "" {
			v.Add("rituals", "Ritual name and description are required")
			break
		}
	}
	return v.OrNil()
}

// PrimaryImage returns the flagged image URL, falling back to the first.
func (f *Festival) PrimaryImage() string {
	return primaryImage(f.Images)
}

// Duration returns the festival length in whole days, inclusive.
func (f *Festival) Duration() int {
	diff := f.Date.End.Sub(f.Date.Start)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours()/24)) + 1
}
