package domain

import "testing"

func TestRouteSummaryDistanceKm(t *testing.T) {
	cases := []struct {
		meters int
		want   float64
	}{
		{0, 0},
		{950, 1.0},
		{12345, 12.3},
		{12550, 12.6},
	}

	for _, c := range cases {
		got := RouteSummary{DistanceMeters: c.meters}.DistanceKm()
		if got != c.want {
			t.Errorf("DistanceKm(%d m) = %v, want %v", c.meters, got, c.want)
		}
	}
}

func TestRouteSummaryDurationMinutes(t *testing.T) {
	cases := []struct {
		seconds int
		want    int
	}{
		{0, 0},
		{29, 0},
		{89, 1},
		{90, 2},
		{3600, 60},
	}

	for _, c := range cases {
		got := RouteSummary{DurationSeconds: c.seconds}.DurationMinutes()
		if got != c.want {
			t.Errorf("DurationMinutes(%d s) = %d, want %d", c.seconds, got, c.want)
		}
	}
}
