package pkgs

import (
	"encoding/json"
	"log"
	"os"

	"gorm.io/gorm"

	"academyku_backend/internals/features/library/packages/model"
)

// Struktur sesuai kolom BookPkgModel
type BookPkgSeed struct {
	Name  string  `json:"name"`
	Fnf   string  `json:"fnf"`
	IL    string  `json:"il"`
	ARMin float64 `json:"ar_min"`
	ARMax float64 `json:"ar_max"`
	WCMin int     `json:"wc_min"`
	WCMax int     `json:"wc_max"`
	CRMin float64 `json:"cr_min"`
	CRMax float64 `json:"cr_max"`
	Count int     `json:"count"`
}

func SeedBookPkgsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var seedRows []BookPkgSeed
	if err := json.Unmarshal(file, &seedRows); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, row := range seedRows {
		var existing model.BookPkgModel
		if err := db.Where("book_pkg_name = ?", row.Name).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Paket %s sudah ada, lewati...", row.Name)
			continue
		}

		pkg := model.BookPkgModel{
			BookPkgName:  row.Name,
			BookPkgFnf:   row.Fnf,
			BookPkgIL:    row.IL,
			BookPkgARMin: row.ARMin,
			BookPkgARMax: row.ARMax,
			BookPkgWCMin: row.WCMin,
			BookPkgWCMax: row.WCMax,
			BookPkgCRMin: row.CRMin,
			BookPkgCRMax: row.CRMax,
			BookPkgCount: row.Count,
		}
		if err := db.Create(&pkg).Error; err != nil {
			log.Printf("❌ Gagal seed paket %s: %v", row.Name, err)
			continue
		}
		log.Printf("✅ Paket %s berhasil dibuat", row.Name)
	}
}
