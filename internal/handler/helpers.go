package handler

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// normalizeDay reduces an incoming date to the canonical YYYY-MM-DD key.
// Timestamps are collapsed to their UTC calendar day; conversion happens at
// this boundary only, everything past it works on the day key.
func normalizeDay(raw string) (string, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// currentUserID reads the caller id placed in the context by middleware.Auth.
// JWT numeric claims arrive as float64.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("user_id").(float64); ok {
		return uint(id)
	}
	return 0
}

func currentSite(c *fiber.Ctx) string {
	if site, ok := c.Locals("site").(string); ok {
		return site
	}
	return ""
}
