// file: internals/features/library/reservations/model/reservation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookReservationModel: booking copy untuk satu siswa pada satu pertemuan.
type BookReservationModel struct {
	BookReservationID        uuid.UUID `json:"book_reservation_id" gorm:"column:book_reservation_id;type:uuid;primaryKey"`
	BookReservationLectureID uuid.UUID `json:"book_reservation_lecture_id" gorm:"column:book_reservation_lecture_id;type:uuid;not null;index"`
	BookReservationStudentID uuid.UUID `json:"book_reservation_student_id" gorm:"column:book_reservation_student_id;type:uuid;not null;index"`

	BookReservationCreatedAt time.Time `json:"book_reservation_created_at" gorm:"column:book_reservation_created_at;autoCreateTime"`

	Books []BookReservationBookModel `json:"books,omitempty" gorm:"foreignKey:BookReservationBookBookReservationID;references:BookReservationID"`
}

func (BookReservationModel) TableName() string { return "book_reservations" }

func (m *BookReservationModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookReservationID == uuid.Nil {
		m.BookReservationID = uuid.New()
	}
	return nil
}

// BookReservationBookModel: klaim satu copy oleh satu reservasi aktif.
// Unique index pada book_inventory_id = satu copy maksimal satu klaim aktif;
// insert kedua gagal di DB (compare-and-swap), baris dihapus saat reservasi
// selesai/batal sehingga copy kembali bebas.
type BookReservationBookModel struct {
	BookReservationBookID                uuid.UUID `json:"book_reservation_book_id" gorm:"column:book_reservation_book_id;type:uuid;primaryKey"`
	BookReservationBookBookReservationID uuid.UUID `json:"book_reservation_book_book_reservation_id" gorm:"column:book_reservation_book_book_reservation_id;type:uuid;not null;index"`
	BookReservationBookBookInventoryID   uuid.UUID `json:"book_reservation_book_book_inventory_id" gorm:"column:book_reservation_book_book_inventory_id;type:uuid;not null;uniqueIndex"`

	BookReservationBookCreatedAt time.Time `json:"book_reservation_book_created_at" gorm:"column:book_reservation_book_created_at;autoCreateTime"`
}

func (BookReservationBookModel) TableName() string { return "book_reservation_books" }

func (m *BookReservationBookModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookReservationBookID == uuid.Nil {
		m.BookReservationBookID = uuid.New()
	}
	return nil
}
