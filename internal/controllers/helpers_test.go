package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storedash/internal/config"
)

// newTestDB opens a per-test in-memory sqlite database with the full
// schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// perform invokes a handler directly with an optional JSON body and
// URL params, returning the recorded response.
func perform(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params

	handler(c)
	return w
}

// mockNotifier counts notification attempts and can be told to fail.
type mockNotifier struct {
	smsCount  int
	pushCount int
	lastTo    string
	lastText  string
	lastToken string
	fail      error
}

func (m *mockNotifier) SendSMS(to, text string) error {
	m.smsCount++
	m.lastTo = to
	m.lastText = text
	return m.fail
}

func (m *mockNotifier) SendPush(token, title, body string) error {
	m.pushCount++
	m.lastToken = token
	return m.fail
}
