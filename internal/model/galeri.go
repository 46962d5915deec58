package model

// Galeri is a photo gallery entry. Same image and date contract as Berita,
// just without an article body.
type Galeri struct {
	ID      int64  `json:"id"      db:"id"`
	Judul   string `json:"judul"   db:"judul"`
	Gambar  string `json:"gambar"  db:"gambar"`
	Tanggal string `json:"tanggal" db:"tanggal"`
}
