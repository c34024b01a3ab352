package models

import (
	"testing"

	"github.com/julianstephens/energyflow/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{DayStartHour: 8, DayEndHour: 20, MediumMatch: "distance", Timezone: "Europe/Berlin"}

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettings_InvalidHour(t *testing.T) {
	_, err := MapToSettings(map[string]string{constants.SettingDayStartHour: "six"})
	if err == nil {
		t.Error("expected error for non-numeric hour")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{}
	ApplyDefaultSettings(&s)

	if s != DefaultSettings() {
		t.Errorf("ApplyDefaultSettings(empty) = %+v, want %+v", s, DefaultSettings())
	}

	custom := Settings{DayStartHour: 0, DayEndHour: 12}
	ApplyDefaultSettings(&custom)
	if custom.DayStartHour != 0 || custom.DayEndHour != 12 {
		t.Errorf("explicit window was overwritten: %+v", custom)
	}
}

func TestBoardColumnAndNormalize(t *testing.T) {
	var b Board
	b.Normalize()
	for _, z := range Zones {
		col := b.Column(z)
		if col == nil || *col == nil {
			t.Fatalf("column %s not normalized", z)
		}
	}
	if b.Column("night") != nil {
		t.Error("expected nil column for unknown zone")
	}
}

func TestParseZone(t *testing.T) {
	if z, err := ParseZone("afternoon"); err != nil || z != ZoneAfternoon {
		t.Errorf("ParseZone(afternoon) = %q, %v", z, err)
	}
	if _, err := ParseZone("noon"); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestLevelRank(t *testing.T) {
	if !(LevelHigh.Rank() > LevelMedium.Rank() && LevelMedium.Rank() > LevelLow.Rank()) {
		t.Error("level ranks out of order")
	}
	if Level("urgent").Rank() != 0 {
		t.Error("unknown level should rank 0")
	}
}

func TestDurationMinutes(t *testing.T) {
	cases := map[float64]int{0.25: 15, 1: 60, 1.5: 90, 2.75: 165}
	for hours, want := range cases {
		if got := (TaskInput{Duration: hours}).DurationMinutes(); got != want {
			t.Errorf("DurationMinutes(%v) = %d, want %d", hours, got, want)
		}
	}
}
