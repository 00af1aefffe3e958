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

func newEmployeeApp(t *testing.T, db *gorm.DB, managerID uint, site string) *fiber.App {
	t.Helper()

	hdl := NewEmployeeHandler(repository.NewEmployeeRepository(db))

	app := fiber.New()
	api := app.Group("/api/employees", authAs(managerID, model.RoleSiteManager, site))
	api.Post("/check", hdl.CheckByPhone)
	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Get("/:id", hdl.GetByID)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
	return app
}

func TestCheckByPhonePrefillsKnownWorkers(t *testing.T) {
	db := newTestDB(t)
	app := newEmployeeApp(t, db, 1, "site-a")

	assert.NoError(t, db.Create(&model.Employee{
		Name: "Jean", Phone: "0788400001", Site: "site-a", CurrentSalary: 5000,
	}).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employees/check", fiber.Map{"phone": "0788400001"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["exists"])
	assert.Equal(t, "Jean", body["name"])
	assert.EqualValues(t, 5000, body["salary"])

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/employees/check", fiber.Map{"phone": "0788499999"}))
	assert.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["exists"])

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/employees/check", fiber.Map{}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCheckByPhoneIsSiteScoped(t *testing.T) {
	db := newTestDB(t)
	app := newEmployeeApp(t, db, 1, "site-b")

	// Same phone number exists, but on another site.
	assert.NoError(t, db.Create(&model.Employee{
		Name: "Jean", Phone: "0788400002", Site: "site-a", CurrentSalary: 5000,
	}).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employees/check", fiber.Map{"phone": "0788400002"}))
	assert.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["exists"])
}

func TestCreateEmployee(t *testing.T) {
	db := newTestDB(t)
	app := newEmployeeApp(t, db, 7, "site-a")

	payload := fiber.Map{"name": "Jean", "phone": "0788400003", "current_salary": 5000}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/employees/", payload))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var emp model.Employee
	assert.NoError(t, db.Where("phone = ?", "0788400003").First(&emp).Error)
	assert.Equal(t, "site-a", emp.Site)
	assert.EqualValues(t, 7, emp.CreatedByID)

	// Re-registering the same phone returns the existing row, not an error.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/employees/", payload))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Employee already exists", body["message"])

	var count int64
	assert.NoError(t, db.Model(&model.Employee{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Zero salary is rejected.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/employees/",
		fiber.Map{"name": "Bob", "phone": "0788400004", "current_salary": 0}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateEmployeeDayRate(t *testing.T) {
	db := newTestDB(t)
	app := newEmployeeApp(t, db, 1, "site-a")

	emp := model.Employee{Name: "Jean", Phone: "0788400005", Site: "site-a", CurrentSalary: 5000}
	assert.NoError(t, db.Create(&emp).Error)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/employees/"+itoa(emp.ID),
		fiber.Map{"current_salary": 6500}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated model.Employee
	assert.NoError(t, db.First(&updated, emp.ID).Error)
	assert.Equal(t, 6500.0, updated.CurrentSalary)
	assert.Equal(t, "Jean", updated.Name) // untouched fields survive

	resp, err = app.Test(jsonRequest(http.MethodPut, "/api/employees/999", fiber.Map{"name": "x"}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateEmployeePhoneCollisionConflicts(t *testing.T) {
	db := newTestDB(t)
	app := newEmployeeApp(t, db, 1, "site-a")

	jean := model.Employee{Name: "Jean", Phone: "0788400008", Site: "site-a", CurrentSalary: 5000}
	claude := model.Employee{Name: "Claude", Phone: "0788400009", Site: "site-a", CurrentSalary: 6000}
	assert.NoError(t, db.Create(&jean).Error)
	assert.NoError(t, db.Create(&claude).Error)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/employees/"+itoa(claude.ID),
		fiber.Map{"phone": jean.Phone}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var unchanged model.Employee
	assert.NoError(t, db.First(&unchanged, claude.ID).Error)
	assert.Equal(t, "0788400009", unchanged.Phone)
}

func TestGetAllEmployeesScopedToCallerSite(t *testing.T) {
	db := newTestDB(t)
	app := newEmployeeApp(t, db, 1, "site-a")

	assert.NoError(t, db.Create(&model.Employee{Name: "Jean", Phone: "0788400006", Site: "site-a", CurrentSalary: 5000}).Error)
	assert.NoError(t, db.Create(&model.Employee{Name: "Claude", Phone: "0788400007", Site: "site-b", CurrentSalary: 5000}).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/employees/", nil))
	assert.NoError(t, err)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])
}
