package geo

import (
	"math"
	"testing"
)

func TestHaversineReference(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"fixture stations", 50.50, 48.49, 51.50, 46.49, 178.7389},
		{"kyiv to lviv", 50.45, 30.52, 49.84, 24.03, 467.2624},
		{"half the equator", 0, 0, 0, 180, 20015.0868},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Haversine() = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestDistanceKmRounds(t *testing.T) {
	if got := DistanceKm(50.50, 48.49, 51.50, 46.49); got != 179 {
		t.Errorf("DistanceKm() = %d, want 179", got)
	}
	if got := DistanceKm(50.45, 30.52, 49.84, 24.03); got != 467 {
		t.Errorf("DistanceKm() = %d, want 467", got)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	points := [][2]float64{
		{50.50, 48.49},
		{51.50, 46.49},
		{-33.86, 151.21},
		{40.71, -74.00},
		{89.9, 0},
		{0, -179.9},
	}

	for _, a := range points {
		if d := DistanceKm(a[0], a[1], a[0], a[1]); d != 0 {
			t.Errorf("distance from %v to itself = %d, want 0", a, d)
		}
		for _, b := range points {
			ab := Haversine(a[0], a[1], b[0], b[1])
			ba := Haversine(b[0], b[1], a[0], a[1])
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance %v->%v = %f, reverse = %f", a, b, ab, ba)
			}
		}
	}
}
