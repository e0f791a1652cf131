package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQueue struct {
	jobs []worker.AuditJobPayload
	err  error
}

func (q *stubQueue) EnqueueAudit(_ context.Context, payload interface{}) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, payload.(worker.AuditJobPayload))
	return nil
}

var _ Enqueuer = (*stubQueue)(nil)

func TestRecord_NormalizesAndEnqueues(t *testing.T) {
	q := &stubQueue{}
	r := NewRecorder(q)

	uid := "7c2f"
	eid := "9a10"
	r.Record(context.Background(), Entry{
		UserID:     &uid,
		Username:   "diretor",
		Action:     "create",
		EntityType: "member",
		EntityID:   &eid,
		Details:    Diff{Old: nil, New: map[string]string{"name": "Zé"}},
		IPAddress:  "10.0.0.7",
	})

	require.Len(t, q.jobs, 1)
	job := q.jobs[0]
	assert.Equal(t, "CREATE", job.Action)
	assert.Equal(t, "MEMBER", job.EntityType)
	assert.Equal(t, "diretor", job.Username)
	require.NotNil(t, job.EntityID)
	assert.Equal(t, "9a10", *job.EntityID)
	assert.JSONEq(t, `{"new":{"name":"Zé"}}`, string(job.Details))
}

// Record swallows failures: an unreachable queue must never fail the
// operation being audited.
func TestRecord_EnqueueFailureIsSwallowed(t *testing.T) {
	q := &stubQueue{err: errors.New("conexão recusada")}
	r := NewRecorder(q)

	assert.NotPanics(t, func() {
		r.Record(context.Background(), Entry{Action: "CREATE", EntityType: "MEMBER"})
	})
	assert.Empty(t, q.jobs)
}

func TestRecord_UnmarshalableDetailsDropped(t *testing.T) {
	q := &stubQueue{}
	r := NewRecorder(q)

	r.Record(context.Background(), Entry{
		Action:     "UPDATE",
		EntityType: "SALE",
		Details:    make(chan int), // not JSON-marshalable
	})

	require.Len(t, q.jobs, 1)
	assert.Nil(t, q.jobs[0].Details)
}
