package main

import "testing"

func TestSynthesizeCaption_DatePatterns(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"IMG_2024-03-15_Paris.heic", "Photo taken on March 15, 2024"},
		{"2023_12_25_morning.jpg", "Photo taken on December 25, 2023"},
		{"20190704_fireworks.jpg", "Photo taken on July 4, 2019"},
		{"vacation_2021-08-01.png", "Photo taken on August 1, 2021"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := synthesizeCaption(tt.filename); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesizeCaption_CleanedFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Grand_Canyon_Sunset.jpg", "Grand Canyon Sunset"},
		{"IMG_beach_day.jpeg", "beach day"},
		{"holiday.png", "holiday"},
		{"family reunion.heic", "family reunion"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := synthesizeCaption(tt.filename); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesizeCaption_InvalidDateFallsBackToFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		// Month 13 is not a calendar date.
		{"IMG_2024-13-01_oops.jpg", "2024-13-01 oops"},
		// February 30th does not exist.
		{"trip_2023-02-30.jpg", "trip 2023-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := synthesizeCaption(tt.filename); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateCaption_Validation(t *testing.T) {
	tests := []struct {
		year, month, day string
		ok               bool
	}{
		{"2024", "03", "15", true},
		{"2024", "02", "29", true}, // leap year
		{"2023", "02", "29", false},
		{"2024", "00", "10", false},
		{"2024", "04", "31", false},
	}

	for _, tt := range tests {
		if _, ok := dateCaption(tt.year, tt.month, tt.day); ok != tt.ok {
			t.Errorf("dateCaption(%s, %s, %s) ok = %v, want %v",
				tt.year, tt.month, tt.day, ok, tt.ok)
		}
	}
}
