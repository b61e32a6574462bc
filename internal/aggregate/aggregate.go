package aggregate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wheelibin/glasshouse/internal/models"
)

// MissingPolicy decides how a metric absent from a reading is averaged
type MissingPolicy int

const (
	// MissingAsZero counts the reading with a value of 0 for the missing metric
	MissingAsZero MissingPolicy = iota
	// MissingExcluded leaves the reading out of that metric's sum and count
	MissingExcluded
)

func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "", "zero":
		return MissingAsZero, nil
	case "exclude":
		return MissingExcluded, nil
	}
	return MissingAsZero, fmt.Errorf("unknown averaging policy %q: %w", s, models.ErrInvalidConfiguration)
}

type options struct {
	missing MissingPolicy
}

type Option func(*options)

func WithMissingPolicy(policy MissingPolicy) Option {
	return func(o *options) {
		o.missing = policy
	}
}

// Averages maps metric name to its mean. A nil Averages means the source had
// no readings in the bucket.
type Averages map[string]float64

// NoData is the averages of a source with no readings in a bucket
var NoData Averages

func (a Averages) HasData() bool {
	return a != nil
}

type Bucket struct {
	Key      time.Time           `json:"key"`
	Images   []string            `json:"images"`
	Averages map[Source]Averages `json:"averages"`
}

type Result struct {
	RangeStart  time.Time     `json:"rangeStart"`
	RangeEnd    time.Time     `json:"rangeEnd"`
	BucketWidth time.Duration `json:"bucketWidth"`
	Buckets     []Bucket      `json:"buckets"`
}

// Bucket looks up the bucket starting at key
func (r *Result) Bucket(key time.Time) (Bucket, bool) {
	i := sort.Search(len(r.Buckets), func(i int) bool {
		return !r.Buckets[i].Key.Before(key)
	})
	if i < len(r.Buckets) && r.Buckets[i].Key.Equal(key) {
		return r.Buckets[i], true
	}
	return Bucket{}, false
}

// BucketWidthMs is 24 hours divided by bucketsPerDay, in milliseconds. It need
// not be a whole number.
func BucketWidthMs(bucketsPerDay int) float64 {
	return float64(24*time.Hour/time.Millisecond) / float64(bucketsPerDay)
}

// BucketKey returns the start of the bucket t falls into. Buckets are anchored
// at rangeStart, not at midnight.
func BucketKey(rangeStart time.Time, t time.Time, widthMs float64) time.Time {
	startMs := rangeStart.UnixMilli()
	index := math.Floor(float64(t.UnixMilli()-startMs) / widthMs)
	return time.UnixMilli(startMs + int64(index*widthMs)).In(rangeStart.Location())
}

type group struct {
	images   []string
	readings map[Source][]Reading
}

// Aggregate assigns every item to a fixed width bucket and averages the
// readings of each source per bucket. Items are not filtered by range, the
// caller supplies what it wants counted.
func Aggregate(rangeStart time.Time, rangeEnd time.Time, bucketsPerDay int, items []Item, opts ...Option) (*Result, error) {
	if bucketsPerDay <= 0 {
		return nil, fmt.Errorf("buckets per day must be positive, got %d: %w", bucketsPerDay, models.ErrInvalidConfiguration)
	}
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("range end %s is before range start %s: %w", rangeEnd, rangeStart, models.ErrInvalidConfiguration)
	}

	o := options{missing: MissingAsZero}
	for _, opt := range opts {
		opt(&o)
	}

	widthMs := BucketWidthMs(bucketsPerDay)
	groups := map[int64]*group{}
	keys := []time.Time{}

	for _, it := range items {
		key := BucketKey(rangeStart, it.Timestamp(), widthMs)
		g, ok := groups[key.UnixMilli()]
		if !ok {
			g = &group{readings: map[Source][]Reading{}}
			groups[key.UnixMilli()] = g
			keys = append(keys, key)
		}

		switch v := it.(type) {
		case Image:
			g.images = append(g.images, v.URL)
		case Reading:
			if v.Source.Known() {
				g.readings[v.Source] = append(g.readings[v.Source], v)
			}
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})

	result := &Result{
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		BucketWidth: time.Duration(widthMs * float64(time.Millisecond)),
		Buckets:     make([]Bucket, 0, len(keys)),
	}
	for _, key := range keys {
		g := groups[key.UnixMilli()]
		bucket := Bucket{
			Key:      key,
			Images:   g.images,
			Averages: map[Source]Averages{},
		}
		if bucket.Images == nil {
			bucket.Images = []string{}
		}
		for _, source := range Sources() {
			bucket.Averages[source] = average(g.readings[source], source.Metrics(), o.missing)
		}
		result.Buckets = append(result.Buckets, bucket)
	}
	return result, nil
}

// average sums left to right in input order so repeated runs give identical
// floating point results
func average(readings []Reading, metrics []string, policy MissingPolicy) Averages {
	if len(readings) == 0 {
		return NoData
	}

	averages := Averages{}
	for _, metric := range metrics {
		sum := 0.0
		count := 0
		for _, r := range readings {
			v, ok := r.Fields[metric]
			if !ok {
				if policy == MissingExcluded {
					continue
				}
				v = 0
			}
			sum += v
			count++
		}
		if count > 0 {
			averages[metric] = sum / float64(count)
		}
	}
	return averages
}
