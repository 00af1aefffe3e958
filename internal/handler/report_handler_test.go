package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newReportApp(t *testing.T, db *gorm.DB, managerID uint) *fiber.App {
	t.Helper()

	hdl := NewReportHandler(repository.NewReportRepository(db))

	app := fiber.New()
	api := app.Group("/api/reports", authAs(managerID, model.RoleSiteManager, "site-a"))
	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Get("/day", hdl.GetByDay)
	return app
}

func TestCreateReportOncePerDay(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788500001", "site-a")
	app := newReportApp(t, db, mgr.ID)

	payload := fiber.Map{
		"date":            "2026-08-30",
		"activities_done": "poured foundation",
		"next_day_plan":   "framing",
		"comments":        "rain in the afternoon",
	}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/reports/", payload))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/reports/", payload))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	assert.NoError(t, db.Model(&model.Report{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Timestamp input collapses to the same day key, so it conflicts too.
	payload["date"] = "2026-08-30T15:04:05Z"
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/reports/", payload))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCreateReportValidation(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788500002", "site-a")
	app := newReportApp(t, db, mgr.ID)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/reports/",
		fiber.Map{"date": "2026-08-30", "activities_done": "poured foundation"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/reports/",
		fiber.Map{"date": "30/08/2026", "activities_done": "x", "next_day_plan": "y"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetReportByDay(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788500003", "site-a")
	app := newReportApp(t, db, mgr.ID)

	assert.NoError(t, db.Create(&model.Report{
		SiteManagerID: mgr.ID, Date: "2026-08-30",
		ActivitiesDone: "poured foundation", NextDayPlan: "framing",
	}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/reports/day?siteManagerId="+itoa(mgr.ID)+"&date=2026-08-30", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/reports/day?siteManagerId="+itoa(mgr.ID)+"&date=2026-08-29", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/reports/day?date=2026-08-30", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
