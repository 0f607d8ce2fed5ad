// file: internals/features/academy/lectures/scheduler/auto_extend.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	lectureService "academyku_backend/internals/features/academy/lectures/service"
	"academyku_backend/internals/configs"
)

// StartAutoExtendScheduler menjalankan job perpanjangan jadwal. Jalan sekali
// saat start, lalu per AUTO_EXTEND_INTERVAL_HOURS; bila env tidak diset,
// setiap tanggal 1 jam 02:00 waktu akademi. Job-nya idempoten per bulan,
// jadi interval rapat / restart berulang tidak menggandakan jadwal.
func StartAutoExtendScheduler(db *gorm.DB) {
	svc := lectureService.NewExpanderService(db)

	go func() {
		runAutoExtend(svc)
		for {
			if hours := configs.GetEnvInt("AUTO_EXTEND_INTERVAL_HOURS", 0); hours > 0 {
				time.Sleep(time.Duration(hours) * time.Hour)
			} else {
				time.Sleep(untilNextMonthlyRun())
			}
			runAutoExtend(svc)
		}
	}()
}

func runAutoExtend(svc *lectureService.ExpanderService) {
	start := time.Now().In(configs.Location())
	n, err := svc.ExtendMonthly(start)
	if err != nil {
		log.Printf("[AUTO-EXTEND] error: %v", err)
		return
	}
	log.Printf("[AUTO-EXTEND] selesai: %d pertemuan baru (%s)", n, time.Since(start))
}

// untilNextMonthlyRun: durasi sampai tanggal 1 pukul 02:00 berikutnya.
func untilNextMonthlyRun() time.Duration {
	loc := configs.Location()
	now := time.Now().In(loc)
	next := time.Date(now.Year(), now.Month(), 1, 2, 0, 0, 0, loc).AddDate(0, 1, 0)
	return time.Until(next)
}
