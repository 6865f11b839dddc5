package lifecycle

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"volunect/models"
	"volunect/renderer"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// stubRenderer returns deterministic bytes, with an optional failure hook.
type stubRenderer struct {
	mu    sync.Mutex
	calls int
	fail  func(data renderer.CertificateData) error
}

func (r *stubRenderer) Render(data renderer.CertificateData) ([]byte, error) {
	r.mu.Lock()
	r.calls++
	fail := r.fail
	r.mu.Unlock()

	if fail != nil {
		if err := fail(data); err != nil {
			return nil, err
		}
	}
	return []byte("%PDF " + data.CertificateNumber), nil
}

func (r *stubRenderer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type memDocStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func (s *memDocStore) Save(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string][]byte)
	}
	s.saved[name] = data
	return "mem://" + name, nil
}

func newTestEngine(t *testing.T) (*Engine, *fixedClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps concurrent writers out of SQLITE_BUSY territory.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Application{},
		&models.Attendance{},
		&models.Certificate{},
	))

	clock := &fixedClock{now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)}
	eng := New(db, &stubRenderer{}, &memDocStore{}).WithClock(clock)
	return eng, clock
}

func seedNGO(t *testing.T, e *Engine, email string) models.User {
	t.Helper()
	user := models.User{
		Name:             "Helping Hands",
		Email:            email,
		Role:             models.RoleNGO,
		OrganizationName: "Helping Hands Trust",
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func seedVolunteer(t *testing.T, e *Engine, email string) models.User {
	t.Helper()
	user := models.User{
		Name:  "Volunteer " + email,
		Email: email,
		Role:  models.RoleVolunteer,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func seedTask(t *testing.T, e *Engine, ownerID uint, scheduled time.Time, maxVolunteers int) *models.Task {
	t.Helper()
	task, err := e.CreateTask(ownerID, TaskInput{
		Title:           "Beach cleanup",
		Description:     "Morning shoreline cleanup",
		Location:        "Goa",
		ScheduledDate:   scheduled,
		HoursPerSession: 4,
		MaxVolunteers:   maxVolunteers,
	})
	require.NoError(t, err)
	return task
}

// approvedVolunteer walks a volunteer through apply + approve for the task.
func approvedVolunteer(t *testing.T, e *Engine, task *models.Task, volunteerID, ownerID uint) *models.Application {
	t.Helper()
	app, err := e.Apply(task.ID, volunteerID, "count me in")
	require.NoError(t, err)
	decided, err := e.Decide(app.ID, ownerID, DecisionApprove)
	require.NoError(t, err)
	return decided
}
