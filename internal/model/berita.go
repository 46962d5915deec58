package model

// Berita is a news article published on the village website.
//
// Gambar holds a public direct-download URL into Dropbox, not the image
// bytes. The record owns that stored object: whoever replaces or deletes
// the row is responsible for cleaning the object up.
//
// Tanggal is a display string ("Senin, 5 Januari 2026", Asia/Jakarta), not
// a timestamp. It is restamped on every edit, so it reads as "last updated".
type Berita struct {
	ID      int64  `json:"id"      db:"id"`
	Judul   string `json:"judul"   db:"judul"`
	Isi     string `json:"isi"     db:"isi"`
	Gambar  string `json:"gambar"  db:"gambar"`
	Tanggal string `json:"tanggal" db:"tanggal"`
}
