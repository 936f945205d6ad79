package forecast

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestParseFullDocument(t *testing.T) {
	doc := `{
		"city": {"name": "Москва"},
		"list": [
			{"dt_txt": "2024-01-10 09:00:00", "main": {"temp": 270.15, "humidity": 85},
			 "weather": [{"description": "Небольшой снег"}], "snow": {"3h": 0.4}, "wind": {"speed": 3.2}},
			{"dt_txt": "2024-01-10 12:00:00", "main": {"temp": 272.15, "humidity": 80},
			 "weather": [{"description": "пасмурно"}], "rain": {"3h": 0.25}}
		]
	}`

	fc, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc.City != "Москва" {
		t.Errorf("expected city Москва, got %q", fc.City)
	}
	if len(fc.Series) != 2 {
		t.Fatalf("expected 2 points, got %d", len(fc.Series))
	}

	first := fc.Series[0]
	want := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	if !first.Time.Equal(want) {
		t.Errorf("expected time %v, got %v", want, first.Time)
	}
	if first.Description != "небольшой снег" {
		t.Errorf("description was not lower-cased: %q", first.Description)
	}
	if first.Snow3h != 0.4 || first.WindSpeed != 3.2 || first.Rain3h != 0 {
		t.Errorf("unexpected optional fields: %+v", first)
	}
	if first.Humidity != 85 {
		t.Errorf("expected humidity 85, got %d", first.Humidity)
	}

	second := fc.Series[1]
	if second.Rain3h != 0.25 || second.Snow3h != 0 || second.WindSpeed != 0 {
		t.Errorf("absent optional fields must be zero: %+v", second)
	}
	// 272.15 K is -1 °C
	if got := second.TempC(); math.Abs(got+1) > 1e-9 {
		t.Errorf("expected -1 °C, got %f", got)
	}
}

func TestParseRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "empty list",
			doc:   `{"list": []}`,
			field: "empty",
		},
		{
			name:  "missing dt_txt",
			doc:   `{"list": [{"main": {"temp": 280, "humidity": 50}, "weather": [{"description": "ясно"}]}]}`,
			field: "dt_txt",
		},
		{
			name:  "missing main.temp",
			doc:   `{"list": [{"dt_txt": "2024-01-10 09:00:00", "main": {"humidity": 50}, "weather": [{"description": "ясно"}]}]}`,
			field: "main.temp",
		},
		{
			name:  "missing main",
			doc:   `{"list": [{"dt_txt": "2024-01-10 09:00:00", "weather": [{"description": "ясно"}]}]}`,
			field: "main.temp",
		},
		{
			name:  "missing humidity",
			doc:   `{"list": [{"dt_txt": "2024-01-10 09:00:00", "main": {"temp": 280}, "weather": [{"description": "ясно"}]}]}`,
			field: "main.humidity",
		},
		{
			name:  "missing weather",
			doc:   `{"list": [{"dt_txt": "2024-01-10 09:00:00", "main": {"temp": 280, "humidity": 50}, "weather": []}]}`,
			field: "weather[0].description",
		},
		{
			name:  "bad timestamp",
			doc:   `{"list": [{"dt_txt": "10.01.2024 09:00", "main": {"temp": 280, "humidity": 50}, "weather": [{"description": "ясно"}]}]}`,
			field: "invalid timestamp",
		},
		{
			name: "decreasing timestamps",
			doc: `{"list": [
				{"dt_txt": "2024-01-10 12:00:00", "main": {"temp": 280, "humidity": 50}, "weather": [{"description": "ясно"}]},
				{"dt_txt": "2024-01-10 09:00:00", "main": {"temp": 280, "humidity": 50}, "weather": [{"description": "ясно"}]}
			]}`,
			field: "precedes",
		},
		{
			name:  "not json",
			doc:   `list`,
			field: "malformed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %q, got %v", tt.field, err)
			}
		})
	}
}

func TestSeriesHead(t *testing.T) {
	s := make(Series, 5)
	if got := len(s.Head(3)); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := len(s.Head(16)); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := len(s.Head(-1)); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
