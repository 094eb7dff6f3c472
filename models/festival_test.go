package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFestival() Festival {
	start := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	return Festival{
		Name:             "Bathukamma",
		Description:      "Floral festival celebrated across Telangana during Navratri.",
		ShortDescription: "The flower festival of Telangana.",
		Date:             DateRange{Start: start, End: start.AddDate(0, 0, 8)},
		Location: Location{
			Type:        "Point",
			Coordinates: []float64{79.1288, 17.9784},
			Address:     "Statewide",
			District:    "Warangal",
		},
		Category:     "Cultural",
		Significance: "Celebrates the goddess Gauri with flower stacks and folk songs.",
	}
}

func TestFestivalValidateOK(t *testing.T) {
	f := validFestival()
	assert.NoError(t, f.Validate())
}

func TestFestivalValidateDates(t *testing.T) {
	f := validFestival()
	f.Date = DateRange{}
	err := f.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "Start date is required")
	assert.Contains(t, err.Error(), "End date is required")

	f = validFestival()
	f.Date.End = f.Date.Start.AddDate(0, 0, -1)
	assert.Error(t, f.Validate())

	// Single-day festivals are valid.
	f = validFestival()
	f.Date.End = f.Date.Start
	assert.NoError(t, f.Validate())
}

func TestFestivalValidateRituals(t *testing.T) {
	f := validFestival()
	f.Rituals = []Ritual{{Name: "Boddemma", Description: "Closing-day immersion"}}
	assert.NoError(t, f.Validate())

	f.Rituals = []Ritual{{Name: "Boddemma"}}
	assert.Error(t, f.Validate())
}

func TestFestivalApplyDefaults(t *testing.T) {
	f := Festival{}
	f.ApplyDefaults()
	assert.Equal(t, "Point", f.Location.Type)
	assert.Equal(t, "Free", f.EntryFee)
	assert.Equal(t, "All day", f.Timings)
}

func TestFestivalDuration(t *testing.T) {
	f := validFestival()
	assert.Equal(t, 9, f.Duration())

	f.Date.End = f.Date.Start
	assert.Equal(t, 1, f.Duration())
}
