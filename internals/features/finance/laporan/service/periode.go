package service

import (
	"fmt"
	"strings"
	"time"
)

// Periode: jenis jendela waktu laporan.
type Periode string

const (
	PeriodeSemua    Periode = ""
	PeriodeHari     Periode = "hari"
	PeriodeMinggu   Periode = "minggu"
	PeriodeBulan    Periode = "bulan"
	PeriodeTriwulan Periode = "triwulan"
	PeriodeSemester Periode = "semester"
	PeriodeTahun    Periode = "tahun"
)

func (p Periode) Valid() bool {
	switch p {
	case PeriodeSemua, PeriodeHari, PeriodeMinggu, PeriodeBulan, PeriodeTriwulan, PeriodeSemester, PeriodeTahun:
		return true
	}
	return false
}

// Rentang setengah terbuka [Mulai, Sampai).
type Rentang struct {
	Mulai  time.Time `json:"mulai"`
	Sampai time.Time `json:"sampai"`
}

func (r Rentang) Contains(t time.Time) bool {
	return !t.Before(r.Mulai) && t.Before(r.Sampai)
}

// ParseAnchor menerima "2025-07-15", "2025-07" atau "2025"; kosong = hari ini.
func ParseAnchor(s string, loc *time.Location, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.In(loc), nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("periode %q tidak dikenali (pakai YYYY-MM-DD, YYYY-MM atau YYYY)", s)
}

// ResolveRange menghitung rentang dari anchor. Minggu dimulai Senin.
// Semester: Jan–Jun atau Jul–Des pada tahun anchor.
func ResolveRange(p Periode, anchor time.Time, loc *time.Location) (Rentang, error) {
	a := anchor.In(loc)
	y, m, d := a.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch p {
	case PeriodeHari:
		return Rentang{day, day.AddDate(0, 0, 1)}, nil
	case PeriodeMinggu:
		offset := (int(day.Weekday()) + 6) % 7 // Senin = 0
		start := day.AddDate(0, 0, -offset)
		return Rentang{start, start.AddDate(0, 0, 7)}, nil
	case PeriodeBulan:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Rentang{start, start.AddDate(0, 1, 0)}, nil
	case PeriodeTriwulan:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start := time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		return Rentang{start, start.AddDate(0, 3, 0)}, nil
	case PeriodeSemester:
		sm := time.January
		if m >= time.July {
			sm = time.July
		}
		start := time.Date(y, sm, 1, 0, 0, 0, 0, loc)
		return Rentang{start, start.AddDate(0, 6, 0)}, nil
	case PeriodeTahun:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Rentang{start, start.AddDate(1, 0, 0)}, nil
	}
	return Rentang{}, fmt.Errorf("filter %q tidak dikenal", p)
}
