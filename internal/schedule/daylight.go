package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/wheelibin/glasshouse/internal/models"
)

// ParseGeoLocation reads a "lat,lng" pair, e.g. "51.5072,-0.1276"
func ParseGeoLocation(geoLocation string) (float64, float64, error) {
	latLng := strings.Split(geoLocation, ",")
	if len(latLng) != 2 {
		return 0, 0, fmt.Errorf("geo location %q is not lat,lng: %w", geoLocation, models.ErrInvalidConfiguration)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latLng[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("geo location latitude %q: %w", latLng[0], models.ErrInvalidConfiguration)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(latLng[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("geo location longitude %q: %w", latLng[1], models.ErrInvalidConfiguration)
	}
	return lat, lng, nil
}

// DaylightInterval returns sunrise to sunset on the given date as an HHMM
// interval in the date's location. Polar day and night have no interval.
func DaylightInterval(lat float64, lng float64, date time.Time) (Interval, error) {
	rise, set := sunrise.SunriseSunset(lat, lng, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return Interval{}, fmt.Errorf("no sunrise or sunset on %s: %w", date.Format(time.DateOnly), models.ErrInvalidInterval)
	}

	rise = rise.In(date.Location())
	set = set.In(date.Location())
	interval := Interval{
		Start: HHMM(rise.Hour()*100 + rise.Minute()),
		End:   HHMM(set.Hour()*100 + set.Minute()),
	}
	if err := interval.Validate(); err != nil {
		return Interval{}, err
	}
	return interval, nil
}
