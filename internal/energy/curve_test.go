package energy

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/julianstephens/energyflow/internal/models"
)

func testProfile(peakStart, peakEnd int, amplitude float64) models.EnergyProfile {
	return models.EnergyProfile{
		Chronotype: models.Chronotype{PeakStart: peakStart, PeakEnd: peakEnd},
		Amplitude:  models.Amplitude{Score: amplitude},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEnergyAt(t *testing.T) {
	p := testProfile(10, 18, 3)

	tests := []struct {
		name string
		hour int
		want float64
	}{
		{"midnight ramp", 0, 40},
		{"mid ramp", 5, 55},
		{"peak start", 10, 70},
		{"peak middle", 14, 100},
		{"peak end", 18, 70},
		{"decline", 21, 70 - 50*3.0/6.0},
		{"last hour", 23, 70 - 50*5.0/6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnergyAt(tt.hour, p); !approx(got, tt.want) {
				t.Errorf("EnergyAt(%d) = %v, want %v", tt.hour, got, tt.want)
			}
		})
	}
}

func TestEnergyAt_PeakEdgesAreSeventy(t *testing.T) {
	for _, p := range []models.EnergyProfile{
		testProfile(14, 22, 0),
		testProfile(10, 18, 1.5),
		testProfile(6, 14, 3),
	} {
		for _, h := range []int{p.Chronotype.PeakStart, p.Chronotype.PeakEnd} {
			if got := EnergyAt(h, p); !approx(got, 70) {
				t.Errorf("EnergyAt(%d) for peak %d-%d = %v, want 70",
					h, p.Chronotype.PeakStart, p.Chronotype.PeakEnd, got)
			}
		}
	}
}

func TestEnergyAt_DegenerateWindows(t *testing.T) {
	// peakStart 0 has no ramp to divide by.
	if got := EnergyAt(0, testProfile(0, 8, 3)); !approx(got, 70) {
		t.Errorf("EnergyAt(0) with peakStart 0 = %v, want 70", got)
	}
	// peakEnd 24 has no decline to divide by.
	if got := EnergyAt(23, testProfile(16, 24, 0)); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("EnergyAt(23) with peakEnd 24 = %v", got)
	}
	if got := EnergyAt(12, testProfile(12, 12, 3)); !approx(got, 70) {
		t.Errorf("EnergyAt(12) with empty window = %v, want 70", got)
	}
}

func TestClampedRange(t *testing.T) {
	for _, p := range []models.EnergyProfile{
		testProfile(14, 22, 3),
		testProfile(10, 18, 0),
		testProfile(6, 14, 3),
	} {
		for h := 0; h < 24; h++ {
			v := Clamp(EnergyAt(h, p))
			if v < 10 || v > 100 {
				t.Errorf("Clamp(EnergyAt(%d)) = %v out of range", h, v)
			}
		}
	}
	if Clamp(-4) != 10 || Clamp(140) != 100 || Clamp(55) != 55 {
		t.Error("Clamp did not bound values")
	}
}

func TestCurve(t *testing.T) {
	p := testProfile(10, 18, 3)

	exact := Curve(p, nil)
	if len(exact) != 24 {
		t.Fatalf("Curve returned %d points, want 24", len(exact))
	}
	if exact[14].Energy != 100 || exact[0].Energy != 40 {
		t.Errorf("unexpected exact curve values: %+v", exact)
	}

	jittered := Curve(p, rand.New(rand.NewSource(42)))
	again := Curve(p, rand.New(rand.NewSource(42)))
	for i := range jittered {
		if jittered[i] != again[i] {
			t.Fatalf("jitter not reproducible for a fixed seed at hour %d", i)
		}
		if jittered[i].Energy < 10 || jittered[i].Energy > 100 {
			t.Errorf("hour %d energy %d out of display range", i, jittered[i].Energy)
		}
		if d := jittered[i].Energy - exact[i].Energy; d < -5 || d > 5 {
			t.Errorf("hour %d jitter %d exceeds ±5", i, d)
		}
	}
}

func TestCurrentZone(t *testing.T) {
	tests := []struct {
		hour int
		zone models.Zone
		name string
	}{
		{4, models.ZoneEvening, "Evening Peak"},
		{5, models.ZoneMorning, "Morning Energy"},
		{11, models.ZoneMorning, "Morning Energy"},
		{12, models.ZoneAfternoon, "Afternoon Energy"},
		{17, models.ZoneAfternoon, "Afternoon Energy"},
		{18, models.ZoneEvening, "Evening Peak"},
	}

	for _, tt := range tests {
		z := CurrentZone(time.Date(2025, 3, 1, tt.hour, 30, 0, 0, time.UTC))
		if z.Zone != tt.zone || z.Name != tt.name {
			t.Errorf("CurrentZone(%02d:30) = %+v, want %s/%s", tt.hour, z, tt.zone, tt.name)
		}
	}
}
