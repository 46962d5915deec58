package service

import (
	"fmt"
	"time"
)

// Indonesian day and month names. Go's time formatting has no locale
// support, and the tanggal column is a display string the front-end shows
// verbatim, so the names live here as tables.
var (
	hariIndonesia = [...]string{
		"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
	}
	bulanIndonesia = [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
)

// wib is the Asia/Jakarta zone. LoadLocation needs the tz database; when it
// is missing (scratch containers) UTC+7 is the same offset year-round since
// WIB has no daylight saving.
var wib = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}()

// tanggalWIB renders t as the site's long-form Indonesian date,
// e.g. "Senin, 5 Januari 2026". Stored on every create and restamped on
// every update — it reads as "last updated", not "created at".
func tanggalWIB(t time.Time) string {
	t = t.In(wib)
	return fmt.Sprintf("%s, %d %s %d",
		hariIndonesia[t.Weekday()], t.Day(), bulanIndonesia[t.Month()-1], t.Year())
}
