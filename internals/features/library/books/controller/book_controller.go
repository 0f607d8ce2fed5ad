// file: internals/features/library/books/controller/book_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "academyku_backend/internals/features/library/books/model"
	bookService "academyku_backend/internals/features/library/books/service"
	helper "academyku_backend/internals/helpers"
)

var validate = validator.New()

type BookController struct {
	DB        *gorm.DB
	Inventory *bookService.InventoryService
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{
		DB:        db,
		Inventory: bookService.NewInventoryService(db),
	}
}

type createBookRequest struct {
	Title     string  `json:"title" validate:"required,max=200"`
	Author    string  `json:"author" validate:"max=100"`
	Publisher string  `json:"publisher" validate:"max=100"`
	Fnf       string  `json:"fnf" validate:"required,oneof=1 2"`
	IL        string  `json:"il" validate:"omitempty,max=10"`
	ARScore   float64 `json:"ar_score" validate:"gte=0"`
	WordCount int     `json:"word_count" validate:"gte=0"`
}

// POST /api/l/books
func (ctl *BookController) Create(c *fiber.Ctx) error {
	var req createBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	il := req.IL
	if il == "" {
		il = bookModel.ILAny
	}
	book := bookModel.BookModel{
		BookTitle:     req.Title,
		BookAuthor:    req.Author,
		BookPublisher: req.Publisher,
		BookFnf:       req.Fnf,
		BookIL:        il,
		BookARScore:   req.ARScore,
		BookWordCount: req.WordCount,
	}
	if err := ctl.DB.Create(&book).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal menyimpan buku")
	}
	return helper.JsonCreated(c, "Buku berhasil disimpan", book)
}

// GET /api/l/books?fnf=&il=
func (ctl *BookController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&bookModel.BookModel{})
	if fnf := c.Query("fnf"); fnf != "" {
		q = q.Where("book_fnf = ?", fnf)
	}
	if il := c.Query("il"); il != "" && il != bookModel.ILAny {
		q = q.Where("book_il = ?", il)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal menghitung buku")
	}
	var books []bookModel.BookModel
	if err := q.Order("book_title ASC").Offset(paging.Offset).Limit(paging.Limit).Find(&books).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal mengambil buku")
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar buku", books, &pg)
}

type addInventoryRequest struct {
	BookID    uuid.UUID `json:"book_id" validate:"required"`
	AcademyID uuid.UUID `json:"academy_id" validate:"required"`
	BoxCode   string    `json:"box_code" validate:"max=20"`
}

// POST /api/l/inventories
func (ctl *BookController) AddInventory(c *fiber.Ctx) error {
	var req addInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	inv, err := ctl.Inventory.AddInventory(req.BookID, req.AcademyID, req.BoxCode)
	if err != nil {
		if errors.Is(err, bookService.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.MapDBError(c, err, "Gagal mendaftarkan copy")
	}
	return helper.JsonCreated(c, "Copy berhasil didaftarkan", inv)
}

type updateInventoryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=normal damaged lost"`
}

// PATCH /api/l/inventories/:id/status
func (ctl *BookController) UpdateInventoryStatus(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var req updateInventoryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	inv, err := ctl.Inventory.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, bookService.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.MapDBError(c, err, "Gagal memperbarui status copy")
	}
	return helper.JsonUpdated(c, "Status copy diperbarui", inv)
}
