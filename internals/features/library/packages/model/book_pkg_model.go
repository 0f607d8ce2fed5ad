// file: internals/features/library/packages/model/book_pkg_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookPkgModel: satu "paket" — pita skor untuk mencocokkan performa siswa.
type BookPkgModel struct {
	BookPkgID   uuid.UUID `json:"book_pkg_id" gorm:"column:book_pkg_id;type:uuid;primaryKey"`
	BookPkgName string    `json:"book_pkg_name" gorm:"column:book_pkg_name;type:varchar(50);not null;uniqueIndex"`
	BookPkgFnf  string    `json:"book_pkg_fnf" gorm:"column:book_pkg_fnf;type:varchar(1);not null;index"`
	BookPkgIL   string    `json:"book_pkg_il" gorm:"column:book_pkg_il;type:varchar(10);not null;default:'0'"` // '0' = semua level

	BookPkgARMin float64 `json:"book_pkg_ar_min" gorm:"column:book_pkg_ar_min;not null;default:0"`
	BookPkgARMax float64 `json:"book_pkg_ar_max" gorm:"column:book_pkg_ar_max;not null;default:0"`
	BookPkgWCMin int     `json:"book_pkg_wc_min" gorm:"column:book_pkg_wc_min;not null;default:0"`
	BookPkgWCMax int     `json:"book_pkg_wc_max" gorm:"column:book_pkg_wc_max;not null;default:0"`
	BookPkgCRMin float64 `json:"book_pkg_cr_min" gorm:"column:book_pkg_cr_min;not null;default:0"`
	BookPkgCRMax float64 `json:"book_pkg_cr_max" gorm:"column:book_pkg_cr_max;not null;default:0"`

	// jumlah copy yang dialokasikan per rekomendasi
	BookPkgCount int `json:"book_pkg_count" gorm:"column:book_pkg_count;not null;default:1"`

	BookPkgCreatedAt time.Time `json:"book_pkg_created_at" gorm:"column:book_pkg_created_at;autoCreateTime"`
	BookPkgUpdatedAt time.Time `json:"book_pkg_updated_at" gorm:"column:book_pkg_updated_at;autoUpdateTime"`
}

func (BookPkgModel) TableName() string { return "book_pkgs" }

func (m *BookPkgModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookPkgID == uuid.Nil {
		m.BookPkgID = uuid.New()
	}
	return nil
}

// Contains: ketiga agregat siswa masuk pita [min,max] paket.
func (m *BookPkgModel) Contains(meanCR, meanBL float64, meanWC float64) bool {
	if meanCR < m.BookPkgCRMin || meanCR > m.BookPkgCRMax {
		return false
	}
	if meanBL < m.BookPkgARMin || meanBL > m.BookPkgARMax {
		return false
	}
	if meanWC < float64(m.BookPkgWCMin) || meanWC > float64(m.BookPkgWCMax) {
		return false
	}
	return true
}

// BookPkgBookModel: isi paket — judul katalog yang tergabung.
type BookPkgBookModel struct {
	BookPkgBookID        uuid.UUID `json:"book_pkg_book_id" gorm:"column:book_pkg_book_id;type:uuid;primaryKey"`
	BookPkgBookBookPkgID uuid.UUID `json:"book_pkg_book_book_pkg_id" gorm:"column:book_pkg_book_book_pkg_id;type:uuid;not null;index;uniqueIndex:uq_pkg_book"`
	BookPkgBookBookID    uuid.UUID `json:"book_pkg_book_book_id" gorm:"column:book_pkg_book_book_id;type:uuid;not null;index;uniqueIndex:uq_pkg_book"`

	BookPkgBookCreatedAt time.Time `json:"book_pkg_book_created_at" gorm:"column:book_pkg_book_created_at;autoCreateTime"`
}

func (BookPkgBookModel) TableName() string { return "book_pkg_books" }

func (m *BookPkgBookModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookPkgBookID == uuid.Nil {
		m.BookPkgBookID = uuid.New()
	}
	return nil
}
