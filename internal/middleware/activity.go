package middleware

import (
	"strings"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/audit"

	"github.com/gin-gonic/gin"
)

// Context keys handlers may set to enrich or suppress the audit entry.
const (
	AuditEntityKey   = "audit.entity_type" // override the derived entity type
	AuditEntityIDKey = "audit.entity_id"   // override the :id route param
	AuditDetailsKey  = "audit.details"     // any JSON-marshalable value
	AuditSkipKey     = "audit.skip"        // true suppresses the entry
)

// ActivityAudit records every successful mutating request AFTER the handler
// ran, so only operations that actually happened are logged. The entry is
// enqueued, never written inline — a slow audit store cannot slow the API.
func ActivityAudit(recorder *audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		var action string
		switch c.Request.Method {
		case "POST":
			action = "CREATE"
		case "PUT", "PATCH":
			action = "UPDATE"
		case "DELETE":
			action = "DELETE"
		default:
			return
		}

		// Handlers report 5xx by attaching the error and aborting; the
		// envelope is written later by ErrorHandler, so at this point the
		// writer may still hold the default 200. Check c.Errors too.
		status := c.Writer.Status()
		if status < 200 || status > 299 || len(c.Errors) > 0 {
			return
		}
		// Logins are recorded by the auth service with their own action.
		if strings.HasPrefix(c.FullPath(), "/api/auth/") {
			return
		}
		if c.GetBool(AuditSkipKey) {
			return
		}

		entityType := c.GetString(AuditEntityKey)
		if entityType == "" {
			entityType = entityTypeFromPath(c.FullPath())
		}
		if entityType == "" {
			return
		}

		var entityID *string
		if id := c.GetString(AuditEntityIDKey); id != "" {
			entityID = &id
		} else if id := c.Param("id"); id != "" {
			entityID = &id
		}

		entry := audit.Entry{
			Action:     action,
			EntityType: entityType,
			EntityID:   entityID,
			IPAddress:  c.ClientIP(),
		}
		if claims := GetClaims(c); claims != nil {
			uid := claims.UserID
			entry.UserID = &uid
			entry.Username = claims.Username
		}
		if details, ok := c.Get(AuditDetailsKey); ok {
			entry.Details = details
		}

		recorder.Record(c.Request.Context(), entry)
	}
}

// entityTypeFromPath derives an entity name from the route, e.g.
// "/api/bar/sales/:id" → "SALE". Routes whose last segment is not the
// resource (like /inventory/:id/add) override via AuditEntityKey.
func entityTypeFromPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	last := ""
	for _, seg := range segments {
		if seg == "" || seg == "api" || strings.HasPrefix(seg, ":") {
			continue
		}
		last = seg
	}
	if last == "" {
		return ""
	}
	last = strings.ReplaceAll(last, "-", "_")
	last = strings.TrimSuffix(last, "s")
	return strings.ToUpper(last)
}
