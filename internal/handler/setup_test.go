package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"ubudasa-ems-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test and migrates the
// full schema. The shared-cache DSN keeps it alive across connections within
// the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.AttendanceSheet{},
		&model.AttendedEmployee{},
		&model.Payment{},
		&model.Payroll{},
		&model.Report{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// authAs stands in for middleware.Auth and injects the claims a verified
// token would carry.
func authAs(userID uint, role, site string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", float64(userID))
		c.Locals("role", role)
		c.Locals("site", site)
		return c.Next()
	}
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response %q: %v", raw, err)
	}
	return out
}

// finalizeRequest builds the multipart form Finalize expects: a date, the
// roster JSON and a group image.
func finalizeRequest(t *testing.T, date, employeesJSON string, withImage bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if date != "" {
		_ = w.WriteField("date", date)
	}
	if employeesJSON != "" {
		_ = w.WriteField("employees", employeesJSON)
	}
	if withImage {
		part, err := w.CreateFormFile("groupImage", "crew.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write([]byte("fake-jpeg-bytes"))
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/attendance/finalize", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
