package aggregate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelibin/glasshouse/internal/aggregate"
	"github.com/wheelibin/glasshouse/internal/models"
)

var rangeStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
var rangeEnd = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

func soil(at time.Time, fields map[string]float64) aggregate.Reading {
	return aggregate.Reading{Source: aggregate.SourceSoil, Fields: fields, At: at}
}

func dht(at time.Time, fields map[string]float64) aggregate.Reading {
	return aggregate.Reading{Source: aggregate.SourceDHT22, Fields: fields, At: at}
}

func image(at time.Time, url string) aggregate.Image {
	return aggregate.Image{URL: url, At: at}
}

func Test_Aggregate_InvalidBucketsPerDay(t *testing.T) {
	for _, bucketsPerDay := range []int{0, -1} {
		res, err := aggregate.Aggregate(rangeStart, rangeEnd, bucketsPerDay, nil)
		assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
		assert.Nil(t, res)
	}
}

func Test_Aggregate_RangeEndBeforeStart(t *testing.T) {
	_, err := aggregate.Aggregate(rangeEnd, rangeStart, 2, nil)
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func Test_Aggregate_Empty(t *testing.T) {
	res, err := aggregate.Aggregate(rangeStart, rangeEnd, 4, []aggregate.Item{})

	require.NoError(t, err)
	assert.Empty(t, res.Buckets)
	assert.Equal(t, 6*time.Hour, res.BucketWidth)
}

func Test_Aggregate_BucketBoundaries(t *testing.T) {
	tests := []struct {
		name          string
		start         time.Time
		bucketsPerDay int
		at            time.Time
		expectedKey   time.Time
	}{
		{
			name:          "item exactly on a boundary falls in the later bucket",
			start:         rangeStart,
			bucketsPerDay: 2,
			at:            rangeStart.Add(12 * time.Hour),
			expectedKey:   rangeStart.Add(12 * time.Hour),
		},
		{
			name:          "item just before a boundary",
			start:         rangeStart,
			bucketsPerDay: 2,
			at:            rangeStart.Add(12*time.Hour - time.Millisecond),
			expectedKey:   rangeStart,
		},
		{
			name:          "buckets are anchored at the range start",
			start:         time.Date(2024, 1, 1, 9, 17, 0, 0, time.UTC),
			bucketsPerDay: 4,
			at:            time.Date(2024, 1, 1, 15, 20, 0, 0, time.UTC),
			expectedKey:   time.Date(2024, 1, 1, 15, 17, 0, 0, time.UTC),
		},
		{
			name:          "widths that do not divide a day",
			start:         rangeStart,
			bucketsPerDay: 5,
			at:            rangeStart.Add(5 * time.Hour),
			expectedKey:   rangeStart.Add(4*time.Hour + 48*time.Minute),
		},
		{
			name:          "one bucket per day",
			start:         rangeStart,
			bucketsPerDay: 1,
			at:            rangeStart.Add(30 * time.Hour),
			expectedKey:   rangeStart.Add(24 * time.Hour),
		},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			res, err := aggregate.Aggregate(c.start, c.start.Add(48*time.Hour), c.bucketsPerDay, []aggregate.Item{image(c.at, "a.jpg")})

			require.NoError(t, err)
			require.Len(t, res.Buckets, 1)
			assert.True(t, c.expectedKey.Equal(res.Buckets[0].Key), "expected %s, got %s", c.expectedKey, res.Buckets[0].Key)
		})
	}
}

func Test_Aggregate_ImageOnlyBucketHasNoData(t *testing.T) {
	items := []aggregate.Item{
		image(rangeStart.Add(time.Hour), "first.jpg"),
		image(rangeStart.Add(2*time.Hour), "second.jpg"),
	}

	res, err := aggregate.Aggregate(rangeStart, rangeEnd, 2, items)

	require.NoError(t, err)
	require.Len(t, res.Buckets, 1)
	b := res.Buckets[0]
	assert.Equal(t, []string{"first.jpg", "second.jpg"}, b.Images)
	for _, source := range aggregate.Sources() {
		assert.False(t, b.Averages[source].HasData(), source)
		assert.Nil(t, b.Averages[source], source)
	}
}

func Test_Aggregate_MissingFieldsCountAsZero(t *testing.T) {
	items := []aggregate.Item{
		soil(rangeStart.Add(time.Hour), map[string]float64{"pH": 6, "EC": 1}),
		soil(rangeStart.Add(2*time.Hour), map[string]float64{"pH": 8}),
		dht(rangeStart.Add(3*time.Hour), map[string]float64{"Temperature": 20, "Humidity": 50}),
		dht(rangeStart.Add(4*time.Hour), map[string]float64{"Temperature": 22, "Humidity": 70}),
	}

	res, err := aggregate.Aggregate(rangeStart, rangeEnd, 2, items)

	require.NoError(t, err)
	require.Len(t, res.Buckets, 1)
	soilAvg := res.Buckets[0].Averages[aggregate.SourceSoil]
	assert.Equal(t, aggregate.Averages{
		"EC":          0.5,
		"Humidity":    0,
		"Moisture":    0,
		"Nitrogen":    0,
		"pH":          7,
		"Phosphorus":  0,
		"Potassium":   0,
		"Temperature": 0,
	}, soilAvg)
	assert.Equal(t, aggregate.Averages{"Humidity": 60, "Temperature": 21}, res.Buckets[0].Averages[aggregate.SourceDHT22])
	assert.Empty(t, res.Buckets[0].Images)
}

func Test_Aggregate_MissingFieldsExcluded(t *testing.T) {
	items := []aggregate.Item{
		soil(rangeStart.Add(time.Hour), map[string]float64{"pH": 6, "EC": 1}),
		soil(rangeStart.Add(2*time.Hour), map[string]float64{"pH": 8}),
	}

	res, err := aggregate.Aggregate(rangeStart, rangeEnd, 2, items, aggregate.WithMissingPolicy(aggregate.MissingExcluded))

	require.NoError(t, err)
	soilAvg := res.Buckets[0].Averages[aggregate.SourceSoil]
	assert.Equal(t, aggregate.Averages{"EC": 1, "pH": 7}, soilAvg)
	assert.True(t, soilAvg.HasData())
	assert.False(t, res.Buckets[0].Averages[aggregate.SourceDHT22].HasData())
}

func Test_Aggregate_SortedAndGrouped(t *testing.T) {
	items := []aggregate.Item{
		dht(rangeStart.Add(30*time.Hour), map[string]float64{"Temperature": 10, "Humidity": 10}),
		image(rangeStart.Add(13*time.Hour), "b.jpg"),
		image(rangeStart.Add(time.Hour), "a.jpg"),
		image(rangeStart.Add(13*time.Hour), "c.jpg"),
		// same timestamp as the one above
		image(rangeStart.Add(13*time.Hour), "d.jpg"),
	}

	res, err := aggregate.Aggregate(rangeStart, rangeEnd, 2, items)

	require.NoError(t, err)
	require.Len(t, res.Buckets, 3)
	assert.True(t, res.Buckets[0].Key.Equal(rangeStart))
	assert.True(t, res.Buckets[1].Key.Equal(rangeStart.Add(12*time.Hour)))
	assert.True(t, res.Buckets[2].Key.Equal(rangeStart.Add(24*time.Hour)))
	assert.Equal(t, []string{"b.jpg", "c.jpg", "d.jpg"}, res.Buckets[1].Images)

	b, ok := res.Bucket(rangeStart.Add(24 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, aggregate.Averages{"Humidity": 10, "Temperature": 10}, b.Averages[aggregate.SourceDHT22])

	_, ok = res.Bucket(rangeStart.Add(36 * time.Hour))
	assert.False(t, ok)
}

func Test_Aggregate_Idempotent(t *testing.T) {
	items := []aggregate.Item{
		soil(rangeStart.Add(time.Hour), map[string]float64{"Moisture": 0.1, "pH": 6.3}),
		soil(rangeStart.Add(2*time.Hour), map[string]float64{"Moisture": 0.2, "pH": 6.7}),
		soil(rangeStart.Add(3*time.Hour), map[string]float64{"Moisture": 0.3}),
		image(rangeStart.Add(14*time.Hour), "x.jpg"),
		dht(rangeStart.Add(15*time.Hour), map[string]float64{"Temperature": 21.3}),
	}

	first, err := aggregate.Aggregate(rangeStart, rangeEnd, 3, items)
	require.NoError(t, err)
	second, err := aggregate.Aggregate(rangeStart, rangeEnd, 3, items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func Test_Aggregate_UnknownSourceIgnored(t *testing.T) {
	items := []aggregate.Item{
		aggregate.Reading{Source: "Rain", Fields: map[string]float64{"mm": 3}, At: rangeStart},
	}

	res, err := aggregate.Aggregate(rangeStart, rangeEnd, 1, items)

	require.NoError(t, err)
	require.Len(t, res.Buckets, 1)
	assert.False(t, res.Buckets[0].Averages[aggregate.SourceSoil].HasData())
	assert.False(t, res.Buckets[0].Averages[aggregate.SourceDHT22].HasData())
}

func Test_ParseSource(t *testing.T) {
	s, err := aggregate.ParseSource("dht22")
	require.NoError(t, err)
	assert.Equal(t, aggregate.SourceDHT22, s)

	_, err = aggregate.ParseSource("camera")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func Test_ParseMissingPolicy(t *testing.T) {
	p, err := aggregate.ParseMissingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, aggregate.MissingAsZero, p)

	p, err = aggregate.ParseMissingPolicy("exclude")
	require.NoError(t, err)
	assert.Equal(t, aggregate.MissingExcluded, p)

	_, err = aggregate.ParseMissingPolicy("mean")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}
