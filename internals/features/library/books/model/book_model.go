// file: internals/features/library/books/model/book_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flag fiksi/non-fiksi (mengikuti kode katalog lama).
const (
	FnfFiction    = "1"
	FnfNonFiction = "2"
)

// ILAny: sentinel reading-level "semua level".
const ILAny = "0"

// Status fisik copy.
const (
	InventoryStatusNormal  = "normal"
	InventoryStatusDamaged = "damaged"
	InventoryStatusLost    = "lost"
)

// BookModel: satu judul katalog. Banyak copy fisik bisa menunjuk judul yang sama.
type BookModel struct {
	BookID        uuid.UUID `json:"book_id" gorm:"column:book_id;type:uuid;primaryKey"`
	BookTitle     string    `json:"book_title" gorm:"column:book_title;type:varchar(200);not null;index"`
	BookAuthor    string    `json:"book_author" gorm:"column:book_author;type:varchar(100)"`
	BookPublisher string    `json:"book_publisher" gorm:"column:book_publisher;type:varchar(100)"`
	BookFnf       string    `json:"book_fnf" gorm:"column:book_fnf;type:varchar(1);not null;index"` // 1=fiksi, 2=non-fiksi
	BookIL        string    `json:"book_il" gorm:"column:book_il;type:varchar(10);not null;default:'0'"`
	BookARScore   float64   `json:"book_ar_score" gorm:"column:book_ar_score;not null;default:0"`
	BookWordCount int       `json:"book_word_count" gorm:"column:book_word_count;not null;default:0"`

	BookCreatedAt time.Time `json:"book_created_at" gorm:"column:book_created_at;autoCreateTime"`
	BookUpdatedAt time.Time `json:"book_updated_at" gorm:"column:book_updated_at;autoUpdateTime"`
}

func (BookModel) TableName() string { return "books" }

func (m *BookModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookID == uuid.Nil {
		m.BookID = uuid.New()
	}
	return nil
}

// BookInventoryModel: satu eksemplar fisik — resource yang direbutkan.
type BookInventoryModel struct {
	BookInventoryID        uuid.UUID `json:"book_inventory_id" gorm:"column:book_inventory_id;type:uuid;primaryKey"`
	BookInventoryBookID    uuid.UUID `json:"book_inventory_book_id" gorm:"column:book_inventory_book_id;type:uuid;not null;index"`
	BookInventoryAcademyID uuid.UUID `json:"book_inventory_academy_id" gorm:"column:book_inventory_academy_id;type:uuid;not null;index"`
	BookInventoryBoxCode   string    `json:"book_inventory_box_code" gorm:"column:book_inventory_box_code;type:varchar(20)"`
	BookInventoryStatus    string    `json:"book_inventory_status" gorm:"column:book_inventory_status;type:varchar(10);not null;default:'normal'"`
	BookInventoryPlbn      string    `json:"book_inventory_plbn" gorm:"column:book_inventory_plbn;type:varchar(20);not null;uniqueIndex"` // nomor copy unik, mis. PEGN0042

	BookInventoryCreatedAt time.Time `json:"book_inventory_created_at" gorm:"column:book_inventory_created_at;autoCreateTime"`
	BookInventoryUpdatedAt time.Time `json:"book_inventory_updated_at" gorm:"column:book_inventory_updated_at;autoUpdateTime"`

	Book *BookModel `json:"book,omitempty" gorm:"foreignKey:BookInventoryBookID;references:BookID"`
}

func (BookInventoryModel) TableName() string { return "book_inventories" }

func (m *BookInventoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookInventoryID == uuid.Nil {
		m.BookInventoryID = uuid.New()
	}
	return nil
}
