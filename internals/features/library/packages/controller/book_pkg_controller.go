// file: internals/features/library/packages/controller/book_pkg_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgModel "academyku_backend/internals/features/library/packages/model"
	helper "academyku_backend/internals/helpers"
)

var validate = validator.New()

type BookPkgController struct {
	DB *gorm.DB
}

func NewBookPkgController(db *gorm.DB) *BookPkgController {
	return &BookPkgController{DB: db}
}

type createPkgRequest struct {
	Name  string  `json:"name" validate:"required,max=50"`
	Fnf   string  `json:"fnf" validate:"required,oneof=1 2"`
	IL    string  `json:"il" validate:"omitempty,max=10"`
	ARMin float64 `json:"ar_min" validate:"gte=0"`
	ARMax float64 `json:"ar_max" validate:"gtefield=ARMin"`
	WCMin int     `json:"wc_min" validate:"gte=0"`
	WCMax int     `json:"wc_max" validate:"gtefield=WCMin"`
	CRMin float64 `json:"cr_min" validate:"gte=0,lte=100"`
	CRMax float64 `json:"cr_max" validate:"gtefield=CRMin,lte=100"`
	Count int     `json:"count" validate:"required,min=1,max=20"`
}

// POST /api/l/pkgs
func (ctl *BookPkgController) Create(c *fiber.Ctx) error {
	var req createPkgRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	il := req.IL
	if il == "" {
		il = "0"
	}
	pkg := pkgModel.BookPkgModel{
		BookPkgName:  req.Name,
		BookPkgFnf:   req.Fnf,
		BookPkgIL:    il,
		BookPkgARMin: req.ARMin,
		BookPkgARMax: req.ARMax,
		BookPkgWCMin: req.WCMin,
		BookPkgWCMax: req.WCMax,
		BookPkgCRMin: req.CRMin,
		BookPkgCRMax: req.CRMax,
		BookPkgCount: req.Count,
	}
	if err := ctl.DB.Create(&pkg).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal menyimpan paket")
	}
	return helper.JsonCreated(c, "Paket berhasil disimpan", pkg)
}

// GET /api/l/pkgs?fnf=
func (ctl *BookPkgController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&pkgModel.BookPkgModel{})
	if fnf := c.Query("fnf"); fnf != "" {
		q = q.Where("book_pkg_fnf = ?", fnf)
	}
	var pkgs []pkgModel.BookPkgModel
	if err := q.Order("book_pkg_name ASC").Find(&pkgs).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal mengambil paket")
	}
	return helper.JsonOK(c, "Daftar paket", pkgs)
}

type addPkgBookRequest struct {
	BookID uuid.UUID `json:"book_id" validate:"required"`
}

// POST /api/l/pkgs/:id/books
func (ctl *BookPkgController) AddBook(c *fiber.Ctx) error {
	pkgID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var req addPkgBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := pkgModel.BookPkgBookModel{
		BookPkgBookBookPkgID: pkgID,
		BookPkgBookBookID:    req.BookID,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Buku sudah ada di paket ini")
		}
		return helper.MapDBError(c, err, "Gagal menambahkan buku ke paket")
	}
	return helper.JsonCreated(c, "Buku ditambahkan ke paket", row)
}
