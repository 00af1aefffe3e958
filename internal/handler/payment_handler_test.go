package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ubudasa-ems-backend/internal/model"
	"ubudasa-ems-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPaymentApp(t *testing.T, db *gorm.DB, managerID uint) *fiber.App {
	t.Helper()

	hdl := NewPaymentHandler(
		repository.NewPaymentRepository(db),
		repository.NewAttendanceRepository(db),
	)

	app := fiber.New()
	api := app.Group("/api/payments", authAs(managerID, model.RoleSiteManager, "site-a"))
	api.Get("/unpaid", hdl.GetUnpaid)
	api.Post("/pay", hdl.MarkManyPaid)
	api.Get("/history", hdl.GetHistory)
	return app
}

// seedSheet inserts a one-worker sheet for the manager on the given day and
// returns the worker.
func seedSheet(t *testing.T, db *gorm.DB, managerID uint, date, phone string, rate float64, paymentStatus string) model.Employee {
	t.Helper()

	emp := model.Employee{Name: "Worker " + phone, Phone: phone, Site: "site-a", CurrentSalary: rate}
	assert.NoError(t, db.Create(&emp).Error)

	entry := model.AttendedEmployee{EmployeeID: emp.ID, Salary: rate, Status: model.StatusPresent, PaymentStatus: paymentStatus}
	if paymentStatus == model.PaymentPaid {
		now := time.Now().UTC()
		entry.PaidAt = &now
	}
	sheet := model.AttendanceSheet{
		SiteManagerID: managerID,
		Date:          date,
		GroupPhoto:    "uploads/x.jpg",
		Entries:       []model.AttendedEmployee{entry},
	}
	assert.NoError(t, db.Create(&sheet).Error)
	return emp
}

func TestGetUnpaidRangeIsInclusiveBothEnds(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788100001", "site-a")
	app := newPaymentApp(t, db, mgr.ID)

	seedSheet(t, db, mgr.ID, "2026-08-01", "0788111101", 5000, model.PaymentUnpaid)
	seedSheet(t, db, mgr.ID, "2026-08-15", "0788111102", 5000, model.PaymentUnpaid)
	seedSheet(t, db, mgr.ID, "2026-08-31", "0788111103", 5000, model.PaymentUnpaid)
	seedSheet(t, db, mgr.ID, "2026-08-20", "0788111104", 5000, model.PaymentPaid)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/payments/unpaid?siteManagerId="+itoa(mgr.ID)+"&start=2026-08-01&end=2026-08-31", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 3, body["count"])

	// Boundary days excluded when the range narrows.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/payments/unpaid?siteManagerId="+itoa(mgr.ID)+"&start=2026-08-02&end=2026-08-30", nil))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])

	// Inverted range is a client error.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/payments/unpaid?siteManagerId="+itoa(mgr.ID)+"&start=2026-08-31&end=2026-08-01", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkManyPaidTagsEachOutcome(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788100002", "site-a")
	app := newPaymentApp(t, db, mgr.ID)

	emp := seedSheet(t, db, mgr.ID, "2026-08-10", "0788111201", 5000, model.PaymentUnpaid)
	paid := seedSheet(t, db, mgr.ID, "2026-08-11", "0788111202", 5000, model.PaymentPaid)

	req := jsonRequest(http.MethodPost, "/api/payments/pay", fiber.Map{
		"payments": []fiber.Map{
			{"employee_id": emp.ID, "site_manager_id": mgr.ID, "date": "2026-08-10"},
			{"employee_id": emp.ID, "site_manager_id": mgr.ID, "date": "2026-08-12"},  // no sheet that day
			{"employee_id": 424242, "site_manager_id": mgr.ID, "date": "2026-08-10"}, // not on the sheet
			{"employee_id": paid.ID, "site_manager_id": mgr.ID, "date": "2026-08-11"},
			{"employee_id": emp.ID, "site_manager_id": mgr.ID, "date": "31/08/2026"}, // bad date
		},
	})
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	results := body["results"].([]interface{})
	assert.Len(t, results, 5)

	outcomes := make([]string, 0, len(results))
	for _, r := range results {
		outcomes = append(outcomes, r.(map[string]interface{})["outcome"].(string))
	}
	assert.Equal(t, []string{OutcomePaid, OutcomeSkipped, OutcomeSkipped, OutcomeSkipped, OutcomeFailed}, outcomes)

	var entry model.AttendedEmployee
	assert.NoError(t, db.Where("employee_id = ?", emp.ID).First(&entry).Error)
	assert.Equal(t, model.PaymentPaid, entry.PaymentStatus)
	assert.NotNil(t, entry.PaidAt)

	var payments []model.Payment
	assert.NoError(t, db.Find(&payments).Error)
	assert.Len(t, payments, 1)
	assert.Equal(t, 5000.0, payments[0].Amount)
	assert.Equal(t, "2026-08-10", payments[0].Date)
}

func TestMarkManyPaidReplayCreatesNoDuplicateReceipts(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788100003", "site-a")
	app := newPaymentApp(t, db, mgr.ID)

	emp := seedSheet(t, db, mgr.ID, "2026-08-10", "0788111301", 5000, model.PaymentUnpaid)

	payload := fiber.Map{"payments": []fiber.Map{
		{"employee_id": emp.ID, "site_manager_id": mgr.ID, "date": "2026-08-10"},
	}}

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/payments/pay", payload))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/payments/pay", payload))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	results := body["results"].([]interface{})
	assert.Equal(t, OutcomeSkipped, results[0].(map[string]interface{})["outcome"])

	var count int64
	assert.NoError(t, db.Model(&model.Payment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMarkManyPaidRejectsEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788100004", "site-a")
	app := newPaymentApp(t, db, mgr.ID)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/payments/pay", fiber.Map{"payments": []fiber.Map{}}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// TestWageLifecycle walks one wage from finalize to settled history across
// the attendance and payment endpoints.
func TestWageLifecycle(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788100006", "site-a")
	attApp := newAttendanceApp(t, db, mgr.ID, mgr.Site)
	payApp := newPaymentApp(t, db, mgr.ID)

	// Day is finalized once; the retry is rejected.
	roster := `[{"name":"Alice","phone":"0788111501","salary_today":5000}]`
	resp, err := attApp.Test(finalizeRequest(t, "2026-08-10", roster, true))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = attApp.Test(finalizeRequest(t, "2026-08-10", roster, true))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// The wage shows up as unpaid.
	unpaidURL := "/api/payments/unpaid?siteManagerId=" + itoa(mgr.ID) + "&start=2026-08-01&end=2026-08-31"
	resp, err = payApp.Test(httptest.NewRequest(http.MethodGet, unpaidURL, nil))
	assert.NoError(t, err)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])

	var sheet model.AttendanceSheet
	assert.NoError(t, db.First(&sheet).Error)
	var alice model.Employee
	assert.NoError(t, db.Where("phone = ?", "0788111501").First(&alice).Error)

	resp, err = attApp.Test(httptest.NewRequest(http.MethodPut,
		"/api/attendance/"+itoa(sheet.ID)+"/entries/"+itoa(alice.ID)+"/pay", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Nothing unpaid remains, and history surfaces the settled wage.
	resp, err = payApp.Test(httptest.NewRequest(http.MethodGet, unpaidURL, nil))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 0, body["count"])

	resp, err = payApp.Test(httptest.NewRequest(http.MethodGet,
		"/api/payments/history?siteManagerId="+itoa(mgr.ID)+"&start=2026-08-01&end=2026-08-31", nil))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])
	item := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Alice", item["employee_name"])
	assert.Equal(t, 5000.0, item["day_rate"])
	assert.NotNil(t, item["paid_at"])
}

func TestGetHistoryPrefersReceiptsThenFallsBackToSheets(t *testing.T) {
	db := newTestDB(t)
	mgr := seedManager(t, db, "0788100005", "site-a")
	app := newPaymentApp(t, db, mgr.ID)

	// Paid entry with no receipt row, as left behind by the per-entry pay
	// endpoint. History must still surface it.
	emp := seedSheet(t, db, mgr.ID, "2026-08-10", "0788111401", 5000, model.PaymentPaid)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/payments/history?siteManagerId="+itoa(mgr.ID)+"&start=2026-08-01&end=2026-08-31", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])

	// Once a receipt exists it becomes the source of truth.
	assert.NoError(t, db.Create(&model.Payment{
		EmployeeID: emp.ID, SiteManagerID: mgr.ID, Date: "2026-08-10", Amount: 5500, Status: "paid",
	}).Error)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/payments/history?siteManagerId="+itoa(mgr.ID)+"&start=2026-08-01&end=2026-08-31", nil))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])
	item := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, 5500.0, item["day_rate"])
}
