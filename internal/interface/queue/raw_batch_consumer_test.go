package queue

import (
	"context"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-unifier-service/internal/domain/entity"
	"flight-unifier-service/pkg/logger"
)

type recordingAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (a *recordingAck) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *recordingAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func (a *recordingAck) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

type fakeProcessor struct {
	batches []*entity.RawBatch
	err     error
}

func (p *fakeProcessor) ProcessBatch(_ context.Context, b *entity.RawBatch) error {
	p.batches = append(p.batches, b)
	return p.err
}

func (p *fakeProcessor) ResetStaleRuns(context.Context) error { return nil }

func deliver(t *testing.T, proc *fakeProcessor, body string) *recordingAck {
	t.Helper()
	ack := &recordingAck{}
	c := NewRawBatchConsumer("amqp://unused", "q", 1, proc, logger.NewNopLogger())
	c.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte(body)})
	return ack
}

func TestHandleDelivery_AcksProcessedBatch(t *testing.T) {
	proc := &fakeProcessor{}
	ack := deliver(t, proc, `{"batch_id":"b-1","provider":"alibaba","search_key":"THR-MHD","payload":{"result":{"departing":[]}}}`)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	require.Len(t, proc.batches, 1)
	b := proc.batches[0]
	assert.Equal(t, "b-1", b.BatchID)
	assert.Equal(t, "alibaba", b.Provider)
	assert.Contains(t, b.Payload, "result")
	assert.False(t, b.ReceivedAt.IsZero())
}

func TestHandleDelivery_DropsMalformedMessage(t *testing.T) {
	proc := &fakeProcessor{}
	ack := deliver(t, proc, `not json`)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.Empty(t, proc.batches)
}

func TestHandleDelivery_RequeuesOnFailure(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("mongo unavailable")}
	ack := deliver(t, proc, `{"batch_id":"b-2","provider":"pateh"}`)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}
