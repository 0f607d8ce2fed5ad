// file: internals/helpers/pg_errors.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError menerjemahkan error Postgres umum ke status HTTP.
// 23503 (FK) → 400, 23505 (unique) → 409, sisanya 500.
func MapDBError(c *fiber.Ctx, err error, fallbackMsg string) error {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case "23503":
			return JsonError(c, fiber.StatusBadRequest, "Data terkait tidak ditemukan (constraint FK)")
		case "23505":
			return JsonError(c, fiber.StatusConflict, "Data sudah ada (duplikat)")
		}
	}
	// driver sqlite (dipakai saat test) menyisipkan "UNIQUE constraint failed"
	if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "duplicate key") {
		return JsonError(c, fiber.StatusConflict, "Data sudah ada (duplikat)")
	}
	if fallbackMsg == "" {
		fallbackMsg = "Terjadi kesalahan pada database"
	}
	return JsonError(c, fiber.StatusInternalServerError, fallbackMsg)
}

// IsUniqueViolation: deteksi pelanggaran unique lintas driver (pgx / sqlite).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}
