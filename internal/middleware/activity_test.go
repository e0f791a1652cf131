package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/audit"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureQueue collects the payloads the audit hook enqueues.
type captureQueue struct {
	jobs []worker.AuditJobPayload
}

func (q *captureQueue) EnqueueAudit(_ context.Context, payload interface{}) error {
	q.jobs = append(q.jobs, payload.(worker.AuditJobPayload))
	return nil
}

var _ audit.Enqueuer = (*captureQueue)(nil)

// auditRouter mirrors the production chain: ErrorHandler globally, the
// audit hook on the /api group.
func auditRouter(q *captureQueue) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	api := r.Group("/api", ActivityAudit(audit.NewRecorder(q)))
	{
		api.GET("/members", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
		api.POST("/members", func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{}) })
		api.PUT("/members/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
		api.DELETE("/members/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		api.POST("/vehicles", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dados incompletos"})
		})
		// 5xx path: the handler attaches the error and aborts, ErrorHandler
		// writes the envelope afterwards.
		api.POST("/events", func(c *gin.Context) {
			_ = c.Error(errors.New("conexão recusada"))
			c.Abort()
		})
		api.POST("/auth/login", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	}
	return r
}

func doReq(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	r.ServeHTTP(w, req)
	return w
}

func TestActivityAudit_RecordsSuccessfulMutations(t *testing.T) {
	q := &captureQueue{}
	r := auditRouter(q)

	doReq(r, http.MethodPost, "/api/members")
	doReq(r, http.MethodPut, "/api/members/abc-123")
	doReq(r, http.MethodDelete, "/api/members/abc-123")

	require.Len(t, q.jobs, 3)
	assert.Equal(t, "CREATE", q.jobs[0].Action)
	assert.Equal(t, "MEMBER", q.jobs[0].EntityType)
	assert.Nil(t, q.jobs[0].EntityID)
	assert.Equal(t, "UPDATE", q.jobs[1].Action)
	require.NotNil(t, q.jobs[1].EntityID)
	assert.Equal(t, "abc-123", *q.jobs[1].EntityID)
	assert.Equal(t, "DELETE", q.jobs[2].Action)
}

func TestActivityAudit_SkipsReadsErrorsAndAuth(t *testing.T) {
	q := &captureQueue{}
	r := auditRouter(q)

	// Reads are never audited.
	doReq(r, http.MethodGet, "/api/members")
	assert.Empty(t, q.jobs)

	// A handler-written 4xx is not a mutation that happened.
	w := doReq(r, http.MethodPost, "/api/vehicles")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, q.jobs)

	// A failed mutation must not be logged even though the writer still
	// holds 200 when the hook runs — ErrorHandler writes the 500 later.
	w = doReq(r, http.MethodPost, "/api/events")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, q.jobs)

	// Logins are recorded by the auth service, not the hook.
	doReq(r, http.MethodPost, "/api/auth/login")
	assert.Empty(t, q.jobs)
}

type failingQueue struct{}

func (failingQueue) EnqueueAudit(context.Context, interface{}) error {
	return errors.New("conexão recusada")
}

func TestActivityAudit_EnqueueFailureDoesNotFailRequest(t *testing.T) {
	r := gin.New()
	api := r.Group("/api", ActivityAudit(audit.NewRecorder(failingQueue{})))
	api.POST("/members", func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{}) })

	w := doReq(r, http.MethodPost, "/api/members")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEntityTypeFromPath(t *testing.T) {
	cases := map[string]string{
		"/api/members":                        "MEMBER",
		"/api/members/:id":                    "MEMBER",
		"/api/bar/sales/:id":                  "SALE",
		"/api/bar/products":                   "PRODUCT",
		"/api/vehicles/:id":                   "VEHICLE",
		"/api/events/:id/participants":        "PARTICIPANT",
		"/api/activity-logs":                  "ACTIVITY_LOG",
		"/api/inventory":                      "INVENTORY",
		"/api/inventory/:id/add":              "ADD", // handlers override these via AuditEntityKey
		"/api":                                "",
		"":                                    "",
	}
	for path, want := range cases {
		assert.Equal(t, want, entityTypeFromPath(path), "path %q", path)
	}
}
