// file: internals/features/academy/lectures/controller/lecture_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academyku_backend/internals/features/academy/lectures/dto"
	lectureModel "academyku_backend/internals/features/academy/lectures/model"
	lectureService "academyku_backend/internals/features/academy/lectures/service"
	helper "academyku_backend/internals/helpers"
)

var validate = validator.New()

type LectureController struct {
	DB      *gorm.DB
	Service *lectureService.ExpanderService
}

func NewLectureController(db *gorm.DB) *LectureController {
	return &LectureController{
		DB:      db,
		Service: lectureService.NewExpanderService(db),
	}
}

// serviceError memetakan sentinel service → status HTTP.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lectureService.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, lectureService.ErrInvalidRule):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, lectureService.ErrConflict):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.MapDBError(c, err, "Gagal memproses jadwal kuliah")
	}
}

func toLectureResponse(lec *lectureModel.LectureModel) dto.LectureResponse {
	resp := dto.LectureResponse{
		LectureID:     lec.LectureID,
		LectureInfoID: lec.LectureLectureInfoID,
		AcademyID:     lec.LectureAcademyID,
		TeacherID:     lec.LectureTeacherID,
		Date:          lec.LectureDate.Format("2006-01-02"),
		StartTime:     lec.LectureStartTime,
		EndTime:       lec.LectureEndTime,
		Memo:          lec.LectureMemo,
	}
	for _, rs := range lec.Students {
		resp.StudentIDs = append(resp.StudentIDs, rs.LectureStudentStudentID)
	}
	return resp
}

// =======================
// POST /api/a/lectures
// =======================
func (ctl *LectureController) Create(c *fiber.Ctx) error {
	var req dto.CreateLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	anchor, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
	}

	info, lectures, err := ctl.Service.Generate(lectureService.GenerateInput{
		AcademyID:   req.AcademyID,
		TeacherID:   req.TeacherID,
		AnchorDate:  anchor,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Memo:        req.Memo,
		Description: req.Description,
		RepeatDays:  req.RepeatDays,
		RepeatWeeks: req.RepeatWeeks,
		AutoAdd:     req.AutoAdd,
		StudentIDs:  req.StudentIDs,
	})
	if err != nil {
		return serviceError(c, err)
	}

	items := make([]dto.LectureResponse, 0, len(lectures))
	for i := range lectures {
		items = append(items, toLectureResponse(&lectures[i]))
	}
	return helper.JsonCreated(c, "Jadwal kuliah berhasil dibuat", fiber.Map{
		"info": dto.LectureInfoResponse{
			LectureInfoID: info.LectureInfoID,
			Description:   info.LectureInfoDescription,
			RepeatDays:    info.LectureInfoRepeatDays,
			RepeatWeeks:   info.LectureInfoRepeatWeeks,
			AutoAdd:       info.LectureInfoAutoAdd,
			LectureCount:  len(items),
		},
		"lectures": items,
	})
}

// =======================
// PATCH /api/a/lecture-infos/:id  — edit rule, regenerate masa depan
// =======================
func (ctl *LectureController) UpdateInfo(c *fiber.Ctx) error {
	infoID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.UpdateLectureInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "effective_date harus format YYYY-MM-DD")
	}

	info, lectures, err := ctl.Service.Regenerate(lectureService.RegenerateInput{
		LectureInfoID: infoID,
		EffectiveDate: effective,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Memo:          req.Memo,
		Description:   req.Description,
		RepeatDays:    req.RepeatDays,
		RepeatWeeks:   req.RepeatWeeks,
		AutoAdd:       req.AutoAdd,
		StudentIDs:    req.StudentIDs,
	})
	if err != nil {
		return serviceError(c, err)
	}

	items := make([]dto.LectureResponse, 0, len(lectures))
	for i := range lectures {
		items = append(items, toLectureResponse(&lectures[i]))
	}
	return helper.JsonUpdated(c, "Jadwal kuliah berhasil diperbarui", fiber.Map{
		"info": dto.LectureInfoResponse{
			LectureInfoID: info.LectureInfoID,
			Description:   info.LectureInfoDescription,
			RepeatDays:    info.LectureInfoRepeatDays,
			RepeatWeeks:   info.LectureInfoRepeatWeeks,
			AutoAdd:       info.LectureInfoAutoAdd,
			LectureCount:  len(items),
		},
		"lectures": items,
	})
}

// =======================
// PATCH /api/a/lectures/:id  — edit satu pertemuan
// =======================
func (ctl *LectureController) Update(c *fiber.Ctx) error {
	lectureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.UpdateLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	lec, err := ctl.Service.UpdateLecture(lectureID, req.StartTime, req.EndTime, req.Memo)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonUpdated(c, "Pertemuan berhasil diperbarui", toLectureResponse(lec))
}

// =======================
// DELETE /api/a/lectures/:id
// =======================
func (ctl *LectureController) Delete(c *fiber.Ctx) error {
	lectureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Service.DeleteLecture(lectureID); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonDeleted(c, "Pertemuan berhasil dihapus", fiber.Map{"lecture_id": lectureID})
}

// =======================
// DELETE /api/a/lecture-infos/:id  — cascade template
// =======================
func (ctl *LectureController) DeleteInfo(c *fiber.Ctx) error {
	infoID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Service.DeleteLectureInfo(infoID); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonDeleted(c, "Template jadwal berhasil dihapus", fiber.Map{"lecture_info_id": infoID})
}

// =======================
// POST /api/a/lecture-infos/:id/makeup
// =======================
func (ctl *LectureController) CreateMakeup(c *fiber.Ctx) error {
	infoID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var req dto.MakeupLectureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
	}

	lec, err := ctl.Service.CreateMakeup(infoID, date, req.StartTime, req.EndTime, req.Memo, req.StudentIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Pertemuan susulan berhasil dibuat", toLectureResponse(lec))
}

// =======================
// POST /api/a/lectures/:id/students
// DELETE /api/a/lectures/:id/students/:student_id
// =======================
func (ctl *LectureController) AddStudent(c *fiber.Ctx) error {
	lectureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var req dto.RosterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Service.AddStudent(lectureID, req.StudentID); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Siswa ditambahkan ke roster", fiber.Map{
		"lecture_id": lectureID,
		"student_id": req.StudentID,
	})
}

func (ctl *LectureController) RemoveStudent(c *fiber.Ctx) error {
	lectureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Service.RemoveStudent(lectureID, studentID); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonDeleted(c, "Siswa dikeluarkan dari roster", fiber.Map{
		"lecture_id": lectureID,
		"student_id": studentID,
	})
}

// =======================
// GET /api/a/lectures?academy_id=&from=&to=
// =======================
func (ctl *LectureController) List(c *fiber.Ctx) error {
	academyID, err := uuid.Parse(c.Query("academy_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "academy_id wajib diisi dan valid")
	}
	from, err := helper.ParseDateQuery(c, "from")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := helper.ParseDateQuery(c, "to")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	lectures, total, err := ctl.Service.ListLectures(academyID, from, to, paging.Offset, paging.Limit)
	if err != nil {
		return serviceError(c, err)
	}

	items := make([]dto.LectureResponse, 0, len(lectures))
	for i := range lectures {
		items = append(items, toLectureResponse(&lectures[i]))
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar pertemuan", items, &pg)
}

// =======================
// GET /api/a/lectures/:id
// =======================
func (ctl *LectureController) GetByID(c *fiber.Ctx) error {
	lectureID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	lec, err := ctl.Service.GetLecture(lectureID)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "Detail pertemuan", toLectureResponse(lec))
}
