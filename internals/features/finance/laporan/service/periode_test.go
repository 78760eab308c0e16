package service

import (
	"testing"
	"time"
)

func TestResolveRange(t *testing.T) {
	jkt := time.FixedZone("WIB", 7*3600)
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, jkt) }
	// Kamis, 14 Agustus 2025 pukul 15:30
	anchor := time.Date(2025, 8, 14, 15, 30, 0, 0, jkt)

	cases := []struct {
		p          Periode
		anchor     time.Time
		mulai, end time.Time
	}{
		{PeriodeHari, anchor, d(2025, 8, 14), d(2025, 8, 15)},
		{PeriodeMinggu, anchor, d(2025, 8, 11), d(2025, 8, 18)},
		{PeriodeMinggu, d(2025, 8, 17), d(2025, 8, 11), d(2025, 8, 18)}, // Minggu ikut minggu yang sama
		{PeriodeMinggu, d(2025, 8, 11), d(2025, 8, 11), d(2025, 8, 18)},
		{PeriodeBulan, anchor, d(2025, 8, 1), d(2025, 9, 1)},
		{PeriodeBulan, d(2024, 12, 31), d(2024, 12, 1), d(2025, 1, 1)},
		{PeriodeTriwulan, anchor, d(2025, 7, 1), d(2025, 10, 1)},
		{PeriodeTriwulan, d(2025, 3, 31), d(2025, 1, 1), d(2025, 4, 1)},
		{PeriodeSemester, anchor, d(2025, 7, 1), d(2026, 1, 1)},
		{PeriodeSemester, d(2025, 6, 30), d(2025, 1, 1), d(2025, 7, 1)},
		{PeriodeSemester, d(2025, 7, 1), d(2025, 7, 1), d(2026, 1, 1)},
		{PeriodeTahun, anchor, d(2025, 1, 1), d(2026, 1, 1)},
	}
	for _, tc := range cases {
		got, err := ResolveRange(tc.p, tc.anchor, jkt)
		if err != nil {
			t.Fatalf("%s: %v", tc.p, err)
		}
		if !got.Mulai.Equal(tc.mulai) || !got.Sampai.Equal(tc.end) {
			t.Errorf("%s @ %s = [%s, %s), want [%s, %s)", tc.p, tc.anchor.Format("2006-01-02"),
				got.Mulai, got.Sampai, tc.mulai, tc.end)
		}
	}

	if _, err := ResolveRange("dekade", anchor, jkt); err == nil {
		t.Error("filter tidak dikenal harus error")
	}
}

func TestRentangHalfOpen(t *testing.T) {
	r, _ := ResolveRange(PeriodeHari, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), time.UTC)
	if !r.Contains(r.Mulai) {
		t.Error("awal rentang harus termasuk")
	}
	if r.Contains(r.Sampai) {
		t.Error("akhir rentang tidak termasuk")
	}
}

func TestParseAnchor(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"":           now,
		"2025-07-15": time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		"2025-07":    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		"2024":       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseAnchor(in, time.UTC, now)
		if err != nil || !got.Equal(want) {
			t.Errorf("ParseAnchor(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseAnchor("15/07/2025", time.UTC, now); err == nil {
		t.Error("format salah harus error")
	}
}
