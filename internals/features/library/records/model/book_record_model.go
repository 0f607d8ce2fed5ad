// file: internals/features/library/records/model/book_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRecordModel: hasil baca satu buku oleh satu siswa — bahan agregasi
// performa (correct rate, skor bl, jumlah kata) dan basis "sudah pernah baca".
type BookRecordModel struct {
	BookRecordID        uuid.UUID `json:"book_record_id" gorm:"column:book_record_id;type:uuid;primaryKey"`
	BookRecordStudentID uuid.UUID `json:"book_record_student_id" gorm:"column:book_record_student_id;type:uuid;not null;index"`
	BookRecordBookID    uuid.UUID `json:"book_record_book_id" gorm:"column:book_record_book_id;type:uuid;not null;index"`

	BookRecordCorrectRate float64 `json:"book_record_correct_rate" gorm:"column:book_record_correct_rate;not null;default:0"` // 0..100
	BookRecordBL          float64 `json:"book_record_bl" gorm:"column:book_record_bl;not null;default:0"`                     // skor buku
	BookRecordWordCount   int     `json:"book_record_word_count" gorm:"column:book_record_word_count;not null;default:0"`

	BookRecordCreatedAt time.Time `json:"book_record_created_at" gorm:"column:book_record_created_at;autoCreateTime;index"`
}

func (BookRecordModel) TableName() string { return "book_records" }

func (m *BookRecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookRecordID == uuid.Nil {
		m.BookRecordID = uuid.New()
	}
	return nil
}
