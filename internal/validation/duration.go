package validation

import (
	"math"
	"time"
)

// Unit is the unit of a share lifetime.
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitDays    Unit = "days"
	UnitWeeks   Unit = "weeks"
)

var unitSeconds = map[Unit]float64{
	UnitMinutes: 60,
	UnitHours:   3600,
	UnitDays:    86400,
	UnitWeeks:   604800,
}

// Units lists the accepted units in display order.
var Units = []Unit{UnitMinutes, UnitHours, UnitDays, UnitWeeks}

// Valid reports whether u is one of the accepted units.
func (u Unit) Valid() bool {
	_, ok := unitSeconds[u]
	return ok
}

// DurationPreset is a one-click share lifetime offered to clients.
type DurationPreset struct {
	Label    string  `json:"label"`
	Duration float64 `json:"duration"`
	Unit     Unit    `json:"unit"`
}

// DurationPresets are the lifetimes offered by default in the share dialog.
var DurationPresets = []DurationPreset{
	{Label: "15 min", Duration: 15, Unit: UnitMinutes},
	{Label: "1 hour", Duration: 1, Unit: UnitHours},
	{Label: "1 day", Duration: 1, Unit: UnitDays},
	{Label: "1 week", Duration: 1, Unit: UnitWeeks},
}

// ToSeconds converts a duration in the given unit to seconds. Unknown units yield 0.
func ToSeconds(duration float64, unit Unit) float64 {
	return duration * unitSeconds[unit]
}

// ShareExpiry is the presigned URL lifetime for a share request, clamped to
// MaxShareExpiry and rounded up to a whole second.
func ShareExpiry(duration float64, unit Unit) time.Duration {
	seconds := math.Min(ToSeconds(duration, unit), MaxShareExpiry.Seconds())
	seconds = math.Max(math.Ceil(seconds), 1)
	return time.Duration(seconds) * time.Second
}
