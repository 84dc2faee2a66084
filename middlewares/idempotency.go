package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"consultancy-backend/database"
	"consultancy-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const idempotencyHeader = "Idempotency-Key"

// Idempotency replays the stored response for a repeated Idempotency-Key on
// mutating requests. A key reused with a different request is a 409. Only
// 2xx responses are stored, so a failed request can be retried with the same key.
func Idempotency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get(idempotencyHeader))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return fiber.NewError(fiber.StatusBadRequest, "Idempotency-Key too long")
		}
		if database.DB == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "database not initialized")
		}
		db := database.DB.WithContext(c.UserContext())

		path := c.OriginalURL() // includes query string

		// Deterministic request hash: method|path|body
		h := sha256.New()
		h.Write([]byte(method))
		h.Write([]byte{'\n'})
		h.Write([]byte(path))
		h.Write([]byte{'\n'})
		h.Write(c.Body())
		reqHash := hex.EncodeToString(h.Sum(nil))

		// ---- Phase 1: read or create the pending record
		var existing models.IdempotencyKey
		err := db.Transaction(func(tx *gorm.DB) error {
			err := tx.Where("idempotency_key = ?", key).First(&existing).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
			}
			existing = models.IdempotencyKey{
				Key:         key,
				RequestHash: reqHash,
				Method:      method,
				Path:        path,
			}
			return tx.Create(&existing).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent request using the same key.
			err = db.Where("idempotency_key = ?", key).First(&existing).Error
		}
		if err != nil {
			return err
		}

		if existing.RequestHash != reqHash {
			return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
		}
		if existing.Completed() {
			if err := db.Model(&existing).UpdateColumn("replays", gorm.Expr("replays + 1")).Error; err != nil {
				log.Printf("idempotency replay count failed for key %s: %v", key, err)
			}
			contentType := existing.ContentType
			if contentType == "" {
				contentType = fiber.MIMEApplicationJSON
			}
			c.Set("Idempotent-Replayed", "true")
			c.Set(fiber.HeaderContentType, contentType)
			return c.Status(existing.ResponseStatus).Send(existing.ResponseBody)
		}
		// Pending: run the handler. Errors go through the app ErrorHandler and are not stored.
		if err := c.Next(); err != nil {
			return err
		}

		// ---- Phase 2: store the response
		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			return nil
		}
		now := time.Now().UTC()
		blob := make([]byte, len(c.Response().Body()))
		copy(blob, c.Response().Body())
		if err := db.Model(&models.IdempotencyKey{}).
			Where("idempotency_key = ?", key).
			Updates(map[string]any{
				"response_status": status,
				"content_type":    string(c.Response().Header.ContentType()),
				"response_body":   blob,
				"completed_at":    &now,
			}).Error; err != nil {
			log.Printf("idempotency store failed for key %s: %v", key, err)
		}
		return nil
	}
}
