package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	// Milton, ON to downtown Toronto is roughly 45 km.
	d := DistanceKm(43.5183, -79.8774, 43.6532, -79.3832)
	if d < 40 || d > 50 {
		t.Fatalf("unexpected distance %.2f km", d)
	}
	if got := DistanceKm(10, 10, 10, 10); got != 0 {
		t.Fatalf("expected 0 for identical points, got %f", got)
	}
}

func TestAroundContainsRadius(t *testing.T) {
	box := Around(43.5183, -79.8774, 50)
	if !box.Contains(43.6532, -79.3832) {
		t.Fatal("expected Toronto inside a 50 km box around Milton")
	}
	if box.Contains(45.4215, -75.6972) {
		t.Fatal("did not expect Ottawa inside a 50 km box around Milton")
	}

	// one degree of latitude is ~111 km
	if math.Abs((box.MaxLatitude-box.MinLatitude)-0.899) > 0.01 {
		t.Fatalf("unexpected latitude span %f", box.MaxLatitude-box.MinLatitude)
	}
}

func TestAroundClampsAtPole(t *testing.T) {
	box := Around(89.9, 0, 100)
	if box.MaxLatitude != 90 {
		t.Fatalf("expected latitude clamped to 90, got %f", box.MaxLatitude)
	}
	if box.MinLongitude != -180 || box.MaxLongitude != 180 {
		t.Fatalf("expected full longitude range near the pole, got %f..%f", box.MinLongitude, box.MaxLongitude)
	}
}
