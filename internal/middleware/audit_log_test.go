package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

// auditRoute serves POST /api/reports, calling record inside the handler.
func auditRoute(identity *model.Identity, record func(*gin.Context)) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.POST("/api/reports", func(c *gin.Context) {
		if identity != nil {
			c.Set(IdentityKey, *identity)
		}
		record(c)
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	req.Header.Set(RequestIDHeader, "req-audit")
	req.Header.Set("User-Agent", "smartpack-test")
	router.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuditLog(t *testing.T) {
	tests := []struct {
		name      string
		identity  *model.Identity
		action    string
		fields    map[string]interface{}
		wantEmail string
	}{
		{
			name:      "signed-in save",
			identity:  &model.Identity{Email: "ana@example.com"},
			action:    model.ActionSaveReport,
			fields:    map[string]interface{}{"report_id": "6650c0f4e13a4b5d8c1e2f3a"},
			wantEmail: "ana@example.com",
		},
		{
			name:   "anonymous quote",
			action: model.ActionQuote,
			fields: map[string]interface{}{"packaging_type": "Box"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			auditRoute(tt.identity, func(c *gin.Context) {
				AuditLog(sink, c, tt.action, "done", tt.fields)
			})

			entry := sink.waitFor(t, 1)[0]
			assert.Equal(t, "info", entry.Level)
			assert.Equal(t, tt.action, entry.ActionType)
			assert.Equal(t, "done", entry.Message)
			assert.Equal(t, tt.wantEmail, entry.UserEmail)
			assert.Equal(t, "req-audit", entry.RequestID)
			assert.Equal(t, http.MethodPost, entry.Method)
			assert.Equal(t, "/api/reports", entry.Path)
			assert.Equal(t, "smartpack-test", entry.UserAgent)
			assert.Equal(t, tt.fields, entry.Fields)
			assert.Empty(t, entry.Error)
		})
	}
}

func TestAuditLogError(t *testing.T) {
	sink := &recordingSink{}
	auditRoute(&model.Identity{Email: "ana@example.com"}, func(c *gin.Context) {
		AuditLogError(sink, c, model.ActionDeleteReport, "delete failed", errors.New("report not found"),
			map[string]interface{}{"report_id": "6650c0f4e13a4b5d8c1e2f3a"})
	})

	entry := sink.waitFor(t, 1)[0]
	assert.Equal(t, "error", entry.Level)
	assert.Equal(t, model.ActionDeleteReport, entry.ActionType)
	assert.Equal(t, "report not found", entry.Error)
	assert.Equal(t, "ana@example.com", entry.UserEmail)
	assert.Equal(t, "6650c0f4e13a4b5d8c1e2f3a", entry.Fields["report_id"])
}

func TestAuditLog_NilService(t *testing.T) {
	assert.NotPanics(t, func() {
		auditRoute(nil, func(c *gin.Context) {
			AuditLog(nil, c, model.ActionQuote, "ignored", nil)
			AuditLogError(nil, c, model.ActionQuote, "ignored", errors.New("x"), nil)
		})
	})
}

func TestAuditLog_UsesGlobalAsyncLogger(t *testing.T) {
	sink := &recordingSink{}
	InitAsyncLogger(sink, AsyncLoggerConfig{NumWorkers: 1, BatchSize: 1})
	t.Cleanup(StopAsyncLogger)

	auditRoute(nil, func(c *gin.Context) {
		AuditLog(sink, c, model.ActionQuote, "quoted", nil)
	})

	sink.waitFor(t, 1)
	assert.Equal(t, int64(1), GetAsyncLogger().Stats().Enqueued)
}
