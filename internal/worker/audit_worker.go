package worker

// Consumes activity-log jobs from QueueAudit and persists them.
// A request handler never waits on this insert: failures are retried
// with backoff and finally parked in the DLQ.

import (
	"context"
	"encoding/json"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/model"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAuditAttempts = 3

// AuditJobPayload is the job envelope sent to QueueAudit.
type AuditJobPayload struct {
	UserID     *string         `json:"user_id,omitempty"`
	Username   string          `json:"username"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *string         `json:"entity_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
}

// AuditWorker processes activity-log jobs from QueueAudit.
type AuditWorker struct {
	logRepo repository.ActivityLogRepository
	rdb     *redis.Client
}

func NewAuditWorker(logRepo repository.ActivityLogRepository, rdb *redis.Client) *AuditWorker {
	return &AuditWorker{logRepo: logRepo, rdb: rdb}
}

// Process inserts one activity log row, retrying up to maxAuditAttempts
// before moving the job to the DLQ.
func (w *AuditWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload AuditJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("audit_worker: invalid payload")
		return
	}
	if payload.Action == "" || payload.EntityType == "" {
		log.Warn().Msg("audit_worker: payload missing action or entity_type — skipping")
		return
	}

	entry := model.ActivityLog{
		Username:   payload.Username,
		Action:     payload.Action,
		EntityType: payload.EntityType,
		EntityID:   payload.EntityID,
		Details:    payload.Details,
		IPAddress:  payload.IPAddress,
	}
	if payload.UserID != nil {
		if id, err := uuid.Parse(*payload.UserID); err == nil {
			entry.UserID = &id
		}
	}

	err := withRetry(ctx, maxAuditAttempts, func(attempt int) error {
		if err := w.logRepo.Create(ctx, &entry); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("action", payload.Action).
				Str("entity_type", payload.EntityType).
				Msg("audit_worker: insert failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		SendToDLQ(ctx, w.rdb, QueueAudit, "audit", raw, err.Error(), maxAuditAttempts)
	}
}
