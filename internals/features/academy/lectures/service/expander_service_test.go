// file: internals/features/academy/lectures/service/expander_service_test.go
package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	academyModel "academyku_backend/internals/features/academy/academies/model"
	lectureModel "academyku_backend/internals/features/academy/lectures/model"
	userModel "academyku_backend/internals/features/academy/users/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&academyModel.AcademyModel{},
		&userModel.UserModel{},
		&userModel.StudentModel{},
		&userModel.TeacherModel{},
		&lectureModel.LectureInfoModel{},
		&lectureModel.LectureModel{},
		&lectureModel.LectureStudentModel{},
	))
	return db
}

type fixture struct {
	academy  academyModel.AcademyModel
	teacher  userModel.TeacherModel
	students []userModel.StudentModel
}

func seedFixture(t *testing.T, db *gorm.DB, studentCount int) fixture {
	t.Helper()

	f := fixture{
		academy: academyModel.AcademyModel{
			AcademyName:      "Academyku Gangnam",
			AcademyBranchKey: "GN",
		},
	}
	require.NoError(t, db.Create(&f.academy).Error)

	teacherUser := userModel.UserModel{UserName: "teacher-" + t.Name(), UserFullName: "Guru Satu", UserPassword: "x", UserRole: "teacher"}
	require.NoError(t, db.Create(&teacherUser).Error)
	f.teacher = userModel.TeacherModel{TeacherUserID: teacherUser.UserID, TeacherAcademyID: f.academy.AcademyID}
	require.NoError(t, db.Create(&f.teacher).Error)

	for i := 0; i < studentCount; i++ {
		u := userModel.UserModel{UserName: fmt.Sprintf("student-%d-%s", i, t.Name()), UserFullName: fmt.Sprintf("Siswa %d", i), UserPassword: "x"}
		require.NoError(t, db.Create(&u).Error)
		s := userModel.StudentModel{StudentUserID: u.UserID, StudentAcademyID: f.academy.AcademyID}
		require.NoError(t, db.Create(&s).Error)
		f.students = append(f.students, s)
	}
	return f
}

func (f fixture) studentIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(f.students))
	for i, s := range f.students {
		ids[i] = s.StudentID
	}
	return ids
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func lectureDates(lectures []lectureModel.LectureModel) []string {
	out := make([]string, len(lectures))
	for i, l := range lectures {
		out[i] = l.LectureDate.Format("2006-01-02")
	}
	return out
}

func TestGenerateMonWedTwoWeeksAnchoredWednesday(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 2)
	svc := NewExpanderService(db)

	// 2024-01-03 = Rabu
	_, lectures, err := svc.Generate(GenerateInput{
		AcademyID:   f.academy.AcademyID,
		TeacherID:   f.teacher.TeacherID,
		AnchorDate:  mustDate(t, "2024-01-03"),
		StartTime:   "15:00",
		EndTime:     "16:30",
		RepeatDays:  []int{0, 2}, // Senin, Rabu
		RepeatWeeks: 2,
		StudentIDs:  f.studentIDs(),
	})
	require.NoError(t, err)
	require.Len(t, lectures, 4)
	require.ElementsMatch(t,
		[]string{"2024-01-03", "2024-01-08", "2024-01-10", "2024-01-15"},
		lectureDates(lectures))

	// semua jatuh di Senin/Rabu
	for _, l := range lectures {
		wd := l.LectureDate.Weekday()
		require.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, wd)
	}

	// pergeseran minggu: Senin pertama (08) mendahului Rabu minggu berikutnya (10)
	require.True(t, mustDate(t, "2024-01-08").Before(mustDate(t, "2024-01-10")))

	// roster ikut dibuat per pertemuan
	var rosterCount int64
	require.NoError(t, db.Model(&lectureModel.LectureStudentModel{}).Count(&rosterCount).Error)
	require.EqualValues(t, 4*2, rosterCount)
}

func TestGenerateNoRepeatIgnoresRepeatWeeks(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 1)
	svc := NewExpanderService(db)

	_, lectures, err := svc.Generate(GenerateInput{
		AcademyID:   f.academy.AcademyID,
		TeacherID:   f.teacher.TeacherID,
		AnchorDate:  mustDate(t, "2024-01-03"),
		StartTime:   "10:00",
		EndTime:     "11:00",
		RepeatDays:  []int{lectureModel.NoRepeatDay},
		RepeatWeeks: 5,
		StudentIDs:  f.studentIDs(),
	})
	require.NoError(t, err)
	require.Len(t, lectures, 1)
	require.Equal(t, "2024-01-03", lectures[0].LectureDate.Format("2006-01-02"))
}

func TestGenerateUnknownTeacherLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 1)
	svc := NewExpanderService(db)

	_, _, err := svc.Generate(GenerateInput{
		AcademyID:   f.academy.AcademyID,
		TeacherID:   uuid.New(), // tidak ada
		AnchorDate:  mustDate(t, "2024-01-03"),
		StartTime:   "10:00",
		EndTime:     "11:00",
		RepeatDays:  []int{0},
		RepeatWeeks: 2,
	})
	require.ErrorIs(t, err, ErrNotFound)

	var infoCount, lectureCount int64
	require.NoError(t, db.Model(&lectureModel.LectureInfoModel{}).Count(&infoCount).Error)
	require.NoError(t, db.Model(&lectureModel.LectureModel{}).Count(&lectureCount).Error)
	require.Zero(t, infoCount)
	require.Zero(t, lectureCount)
}

func TestRegeneratePreservesInstancesBeforeEffectiveDate(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 1)
	svc := NewExpanderService(db)

	info, _, err := svc.Generate(GenerateInput{
		AcademyID:   f.academy.AcademyID,
		TeacherID:   f.teacher.TeacherID,
		AnchorDate:  mustDate(t, "2024-01-03"),
		StartTime:   "15:00",
		EndTime:     "16:30",
		RepeatDays:  []int{0, 2},
		RepeatWeeks: 2,
		StudentIDs:  f.studentIDs(),
	})
	require.NoError(t, err)

	// rule baru: hanya Jumat, efektif 2024-01-10
	_, _, err = svc.Regenerate(RegenerateInput{
		LectureInfoID: info.LectureInfoID,
		EffectiveDate: mustDate(t, "2024-01-10"),
		StartTime:     "15:00",
		EndTime:       "16:30",
		RepeatDays:    []int{4},
		RepeatWeeks:   1,
		StudentIDs:    f.studentIDs(),
	})
	require.NoError(t, err)

	var all []lectureModel.LectureModel
	require.NoError(t, db.Order("lecture_date ASC").Find(&all).Error)
	// histori (03, 08) utuh; 10 & 15 diganti Jumat 12
	require.Equal(t, []string{"2024-01-03", "2024-01-08", "2024-01-12"}, lectureDates(all))
}

func TestRegenerateCollapseToNoRepeat(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 1)
	svc := NewExpanderService(db)

	info, _, err := svc.Generate(GenerateInput{
		AcademyID:   f.academy.AcademyID,
		TeacherID:   f.teacher.TeacherID,
		AnchorDate:  mustDate(t, "2024-01-03"),
		StartTime:   "15:00",
		EndTime:     "16:30",
		RepeatDays:  []int{0, 2},
		RepeatWeeks: 2,
	})
	require.NoError(t, err)

	_, lectures, err := svc.Regenerate(RegenerateInput{
		LectureInfoID: info.LectureInfoID,
		EffectiveDate: mustDate(t, "2024-01-08"),
		StartTime:     "15:00",
		EndTime:       "16:30",
		RepeatDays:    []int{lectureModel.NoRepeatDay},
		RepeatWeeks:   3,
	})
	require.NoError(t, err)
	require.Len(t, lectures, 1)
	require.Equal(t, "2024-01-08", lectures[0].LectureDate.Format("2006-01-02"))
}

func TestExtendMonthlyGeneratesTwoFullMonths(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 1)
	svc := NewExpanderService(db)

	info := lectureModel.LectureInfoModel{
		LectureInfoAcademyID:   f.academy.AcademyID,
		LectureInfoTeacherID:   f.teacher.TeacherID,
		LectureInfoRepeatDays:  []int{0}, // Senin
		LectureInfoRepeatWeeks: 1,
		LectureInfoAutoAdd:     true,
	}
	require.NoError(t, db.Create(&info).Error)

	// instance terakhir: Senin 2024-01-15
	latest := lectureModel.LectureModel{
		LectureLectureInfoID: info.LectureInfoID,
		LectureAcademyID:     f.academy.AcademyID,
		LectureTeacherID:     f.teacher.TeacherID,
		LectureDate:          mustDate(t, "2024-01-15"),
		LectureStartTime:     "15:00",
		LectureEndTime:       "16:30",
	}
	require.NoError(t, db.Create(&latest).Error)
	require.NoError(t, db.Create(&lectureModel.LectureStudentModel{
		LectureStudentLectureID: latest.LectureID,
		LectureStudentStudentID: f.students[0].StudentID,
	}).Error)

	created, err := svc.ExtendMonthly(mustDate(t, "2024-01-20"))
	require.NoError(t, err)
	// Senin Feb 2024: 5,12,19,26. Senin Mar 2024: 4,11,18,25.
	require.Equal(t, 8, created)

	var generated []lectureModel.LectureModel
	require.NoError(t, db.Where("lecture_id <> ?", latest.LectureID).
		Order("lecture_date ASC").Find(&generated).Error)

	feb1, mar31 := mustDate(t, "2024-02-01"), mustDate(t, "2024-03-31")
	for _, l := range generated {
		require.False(t, l.LectureDate.Before(feb1), "tanggal %s sebelum Februari", l.LectureDate)
		require.False(t, l.LectureDate.After(mar31), "tanggal %s melewati Maret", l.LectureDate)
		require.Equal(t, time.Monday, l.LectureDate.Weekday())
		require.Equal(t, "15:00", l.LectureStartTime)
	}

	// roster instance terakhir ikut dibawa
	var rosterCount int64
	require.NoError(t, db.Model(&lectureModel.LectureStudentModel{}).
		Where("lecture_student_lecture_id <> ?", latest.LectureID).
		Count(&rosterCount).Error)
	require.EqualValues(t, len(generated), rosterCount)

	// idempoten: rerun pada hari yang sama tidak boleh menggandakan, meski
	// instance terakhir sudah maju ke Maret karena run pertama
	createdAgain, err := svc.ExtendMonthly(mustDate(t, "2024-01-20"))
	require.NoError(t, err)
	require.Zero(t, createdAgain)

	var total int64
	require.NoError(t, db.Model(&lectureModel.LectureModel{}).Count(&total).Error)
	require.EqualValues(t, 1+len(generated), total)

	// bulan berganti → horizon bergeser satu bulan: Maret sudah ada,
	// hanya April yang diisi (Senin: 1,8,15,22,29)
	createdNext, err := svc.ExtendMonthly(mustDate(t, "2024-02-10"))
	require.NoError(t, err)
	require.Equal(t, 5, createdNext)

	var beyondApril int64
	require.NoError(t, db.Model(&lectureModel.LectureModel{}).
		Where("lecture_date > ?", mustDate(t, "2024-04-30")).
		Count(&beyondApril).Error)
	require.Zero(t, beyondApril)
}

func TestDeleteLastLectureRemovesTemplate(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 1)
	svc := NewExpanderService(db)

	info, lectures, err := svc.Generate(GenerateInput{
		AcademyID:  f.academy.AcademyID,
		TeacherID:  f.teacher.TeacherID,
		AnchorDate: mustDate(t, "2024-01-03"),
		StartTime:  "10:00",
		EndTime:    "11:00",
		RepeatDays: []int{lectureModel.NoRepeatDay},
		StudentIDs: f.studentIDs(),
	})
	require.NoError(t, err)
	require.Len(t, lectures, 1)

	require.NoError(t, svc.DeleteLecture(lectures[0].LectureID))

	var infoCount int64
	require.NoError(t, db.Model(&lectureModel.LectureInfoModel{}).
		Where("lecture_info_id = ?", info.LectureInfoID).Count(&infoCount).Error)
	require.Zero(t, infoCount)
}

func TestAddStudentDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db, 1)
	svc := NewExpanderService(db)

	_, lectures, err := svc.Generate(GenerateInput{
		AcademyID:  f.academy.AcademyID,
		TeacherID:  f.teacher.TeacherID,
		AnchorDate: mustDate(t, "2024-01-03"),
		StartTime:  "10:00",
		EndTime:    "11:00",
		RepeatDays: []int{lectureModel.NoRepeatDay},
	})
	require.NoError(t, err)

	require.NoError(t, svc.AddStudent(lectures[0].LectureID, f.students[0].StudentID))
	err = svc.AddStudent(lectures[0].LectureID, f.students[0].StudentID)
	require.ErrorIs(t, err, ErrConflict)
}
