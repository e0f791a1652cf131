// Package audit records who did what to which entity. Writes go through
// the Redis job queue so a slow or unavailable audit store never delays
// or fails the request being audited.
package audit

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/worker"

	"github.com/rs/zerolog/log"
)

// Entry is one auditable action. Action and EntityType are free-form but
// are normalized to upper case before persisting (CREATE, UPDATE, DELETE,
// LOGIN, MEMBER, SALE, ...).
type Entry struct {
	UserID     *string
	Username   string
	Action     string
	EntityType string
	EntityID   *string
	Details    interface{} // marshalled to JSON; nil means no details
	IPAddress  string
}

// Enqueuer is the slice of the job dispatcher the recorder needs.
type Enqueuer interface {
	EnqueueAudit(ctx context.Context, payload interface{}) error
}

// Recorder enqueues audit entries for asynchronous persistence.
type Recorder struct {
	dispatcher Enqueuer
}

func NewRecorder(dispatcher Enqueuer) *Recorder {
	return &Recorder{dispatcher: dispatcher}
}

// Record enqueues the entry. It never returns an error: an audit failure
// is logged and swallowed so the audited operation still succeeds.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	var details json.RawMessage
	if e.Details != nil {
		data, err := json.Marshal(e.Details)
		if err != nil {
			log.Warn().Err(err).Str("action", e.Action).Msg("audit: failed to marshal details")
		} else {
			details = data
		}
	}

	payload := worker.AuditJobPayload{
		UserID:     e.UserID,
		Username:   e.Username,
		Action:     strings.ToUpper(e.Action),
		EntityType: strings.ToUpper(e.EntityType),
		EntityID:   e.EntityID,
		Details:    details,
		IPAddress:  e.IPAddress,
	}
	if err := r.dispatcher.EnqueueAudit(ctx, payload); err != nil {
		log.Warn().
			Err(err).
			Str("action", payload.Action).
			Str("entity_type", payload.EntityType).
			Msg("audit: failed to enqueue entry")
	}
}

// Diff holds the before/after snapshot stored in the Details column on
// update operations.
type Diff struct {
	Old interface{} `json:"old,omitempty"`
	New interface{} `json:"new,omitempty"`
}
