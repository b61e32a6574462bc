package models

import "time"

// a document read from the document store
type Document struct {
	ID     string
	Fields map[string]any
}

// an object held in the snapshot (object) store
type ObjectRef struct {
	Name string
}

type ObjectMetadata struct {
	CreatedTime time.Time
	Size        int64
}

// a monitored device (camera, soil probe, dht22 sensor or light)
type Device struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
}

// a single schedule row as shown to an operator
type ScheduleView struct {
	ID              string `json:"id"`
	StartTime       int    `json:"start_time"`
	EndTime         int    `json:"end_time"`
	Start           string `json:"startTime"`
	End             string `json:"endTime"`
	DurationMinutes int    `json:"duration"`
	Duration        string `json:"durationText"`
}

type LightDevice struct {
	ID        string         `json:"id"`
	Schedules []ScheduleView `json:"schedules"`
}

// a reading published by a device over mqtt
type ReadingMessage struct {
	Source   string             `json:"source"`
	DeviceID string             `json:"deviceId"`
	DateTime time.Time          `json:"date_time"`
	Fields   map[string]float64 `json:"fields"`
}

// the change notification sent to dashboard clients
type Event struct {
	Type     string    `json:"type"`
	DeviceID string    `json:"deviceId,omitempty"`
	RecordID string    `json:"recordId,omitempty"`
	Payload  any       `json:"payload,omitempty"`
	Time     time.Time `json:"time"`
}

// the result of the external green pixel analysis
type AnalysisResult struct {
	ProcessedImages []struct {
		Filename        string  `json:"filename"`
		GreenPercentage float64 `json:"green_percentage"`
	} `json:"processed_images"`
}
