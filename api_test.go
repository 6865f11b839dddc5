package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"volunect/config"
	"volunect/database"
	"volunect/lifecycle"
	"volunect/middleware"
	"volunect/models"
	"volunect/renderer"
	applicationRoutes "volunect/routers/applicationRoutes"
	attendanceRoutes "volunect/routers/attendanceRoutes"
	certificateRoutes "volunect/routers/certificateRoutes"
	taskRoutes "volunect/routers/taskRoutes"
	"volunect/utils"

	"github.com/gofiber/fiber/v2"
)

var connectOnce sync.Once

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type okRenderer struct{}

func (okRenderer) Render(data renderer.CertificateData) ([]byte, error) {
	return []byte("%PDF " + data.CertificateNumber), nil
}

type testEnv struct {
	app   *fiber.App
	clock *testClock

	ngo      models.User
	ngoToken string

	vol      models.User
	volToken string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	connectOnce.Do(func() {
		_ = os.Setenv("DB_DRIVER", "sqlite")
		_ = os.Setenv("DB_NAME", "file:volunect_api_test?mode=memory&cache=shared")
		_ = os.Setenv("JWT_SECRET_KEY", "test-secret")

		config.LoadConfig()
		database.ConnectDb()
	})

	db := database.Database.Db

	if err := db.Migrator().DropTable(
		&models.Certificate{}, &models.Attendance{}, &models.Application{},
		&models.Task{}, &models.User{},
	); err != nil {
		t.Fatalf("failed to drop tables: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Task{}, &models.Application{},
		&models.Attendance{}, &models.Certificate{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	clock := &testClock{now: time.Now()}
	docStore := utils.NewFileDocumentStore(t.TempDir())
	lifecycle.Init(db, okRenderer{}, docStore)
	lifecycle.Default.WithClock(clock)

	app := fiber.New()
	taskRoutes.SetupTaskRoutes(app)
	applicationRoutes.SetupApplicationRoutes(app)
	attendanceRoutes.SetupAttendanceRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	ngo := models.User{Name: "Helping Hands", Email: "ngo@example.org", Role: models.RoleNGO, OrganizationName: "Helping Hands Trust"}
	vol := models.User{Name: "Ravi", Email: "ravi@example.org", Role: models.RoleVolunteer}
	for _, u := range []*models.User{&ngo, &vol} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user %s: %v", u.Email, err)
		}
	}

	ngoToken, err := middleware.GenerateJWT(ngo.ID, ngo.Name, ngo.Role, ngo.Email)
	if err != nil {
		t.Fatalf("generate ngo token: %v", err)
	}
	volToken, err := middleware.GenerateJWT(vol.ID, vol.Name, vol.Role, vol.Email)
	if err != nil {
		t.Fatalf("generate volunteer token: %v", err)
	}

	return &testEnv{
		app:      app,
		clock:    clock,
		ngo:      ngo,
		ngoToken: ngoToken,
		vol:      vol,
		volToken: volToken,
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return resp, env
}

func TestTaskCertificationFlowOverHTTP(t *testing.T) {
	env := setupTestEnv(t)

	tomorrow := env.clock.Now().AddDate(0, 0, 1).Format("2006-01-02")
	resp, out := doRequest(t, env.app, http.MethodPost, "/task/create", env.ngoToken, fiber.Map{
		"title":             "Blood donation camp",
		"description":       "Assist with registrations",
		"location":          "Pune",
		"scheduled_date":    tomorrow,
		"hours_per_session": 4,
		"max_volunteers":    10,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task: got status %d (%s)", resp.StatusCode, out.Message)
	}
	var task models.Task
	if err := json.Unmarshal(out.Data, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	resp, out = doRequest(t, env.app, http.MethodPost, fmt.Sprintf("/task/%d/apply", task.ID), env.volToken, fiber.Map{
		"motivation": "I want to help",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("apply: got status %d (%s)", resp.StatusCode, out.Message)
	}
	var app models.Application
	if err := json.Unmarshal(out.Data, &app); err != nil {
		t.Fatalf("decode application: %v", err)
	}

	resp, out = doRequest(t, env.app, http.MethodPost, fmt.Sprintf("/application/%d/decide", app.ID), env.ngoToken, fiber.Map{
		"outcome": "approve",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decide: got status %d (%s)", resp.StatusCode, out.Message)
	}

	// The task's day passes; it now reads closed and can be completed.
	env.clock.Advance(48 * time.Hour)

	resp, out = doRequest(t, env.app, http.MethodPost, fmt.Sprintf("/task/%d/attendance", task.ID), env.ngoToken, fiber.Map{
		"volunteer_id":    env.vol.ID,
		"status":          "PRESENT",
		"hours_completed": 4,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark attendance: got status %d (%s)", resp.StatusCode, out.Message)
	}

	resp, out = doRequest(t, env.app, http.MethodPost, fmt.Sprintf("/task/%d/complete", task.ID), env.ngoToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: got status %d (%s)", resp.StatusCode, out.Message)
	}

	resp, out = doRequest(t, env.app, http.MethodGet, "/certificate/list", env.volToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list certificates: got status %d (%s)", resp.StatusCode, out.Message)
	}
	var listing struct {
		Certificates []struct {
			CertificateNumber string  `json:"certificate_number"`
			HoursCompleted    float64 `json:"hours_completed"`
			DocumentURL       string  `json:"document_url"`
		} `json:"certificates"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(out.Data, &listing); err != nil {
		t.Fatalf("decode certificates: %v", err)
	}
	if listing.Total != 1 {
		t.Fatalf("expected 1 certificate, got %d", listing.Total)
	}
	if listing.Certificates[0].HoursCompleted != 4 {
		t.Fatalf("expected 4 hours on certificate, got %v", listing.Certificates[0].HoursCompleted)
	}
	if listing.Certificates[0].DocumentURL == "" {
		t.Fatal("expected a document URL on the certificate")
	}

	// Re-running the sweep is an idempotent no-op.
	resp, out = doRequest(t, env.app, http.MethodPost, fmt.Sprintf("/task/%d/certificates/issue", task.ID), env.ngoToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("re-issue: got status %d (%s)", resp.StatusCode, out.Message)
	}
	_, out = doRequest(t, env.app, http.MethodGet, "/certificate/list", env.volToken, nil)
	if err := json.Unmarshal(out.Data, &listing); err != nil {
		t.Fatalf("decode certificates: %v", err)
	}
	if listing.Total != 1 {
		t.Fatalf("expected still 1 certificate after re-issue, got %d", listing.Total)
	}
}

func TestApplyToPastTaskRejectedOverHTTP(t *testing.T) {
	env := setupTestEnv(t)

	today := env.clock.Now().Format("2006-01-02")
	resp, out := doRequest(t, env.app, http.MethodPost, "/task/create", env.ngoToken, fiber.Map{
		"title":          "Same-day drive",
		"location":       "Mumbai",
		"scheduled_date": today,
		"max_volunteers": 5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task: got status %d (%s)", resp.StatusCode, out.Message)
	}
	var task models.Task
	if err := json.Unmarshal(out.Data, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	// Today counts as closed.
	resp, _ = doRequest(t, env.app, http.MethodGet, fmt.Sprintf("/task/%d", task.ID), env.volToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get task: got status %d", resp.StatusCode)
	}

	resp, out = doRequest(t, env.app, http.MethodPost, fmt.Sprintf("/task/%d/apply", task.ID), env.volToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("apply to closed task: expected 400, got %d (%s)", resp.StatusCode, out.Message)
	}
}

func TestRoleGuardsOverHTTP(t *testing.T) {
	env := setupTestEnv(t)

	tomorrow := env.clock.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// Volunteers cannot create tasks.
	resp, _ := doRequest(t, env.app, http.MethodPost, "/task/create", env.volToken, fiber.Map{
		"title":          "Should not exist",
		"location":       "Delhi",
		"scheduled_date": tomorrow,
		"max_volunteers": 5,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("volunteer create task: expected 403, got %d", resp.StatusCode)
	}

	// NGOs cannot apply.
	resp, out := doRequest(t, env.app, http.MethodPost, "/task/create", env.ngoToken, fiber.Map{
		"title":          "Community kitchen",
		"location":       "Delhi",
		"scheduled_date": tomorrow,
		"max_volunteers": 5,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task: got status %d (%s)", resp.StatusCode, out.Message)
	}
	var task models.Task
	if err := json.Unmarshal(out.Data, &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	resp, _ = doRequest(t, env.app, http.MethodPost, fmt.Sprintf("/task/%d/apply", task.ID), env.ngoToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("ngo apply: expected 403, got %d", resp.StatusCode)
	}

	// No token at all.
	resp, _ = doRequest(t, env.app, http.MethodGet, "/task/list", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: expected 401, got %d", resp.StatusCode)
	}
}
