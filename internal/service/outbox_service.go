package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"Civic_Tracker/internal/model"
	"Civic_Tracker/internal/pkg"
	"Civic_Tracker/internal/repository/mysql"
)

type Sender func(ctx context.Context, ob *model.ComplaintOutbox) error

// OutboxRelayer 定时把投诉生命周期事件从 outbox 表搬到下游
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	maxRetry  int
	sender    Sender
}

func NewOutboxRelayer(sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{},
		batchSize: 200,
		interval:  time.Second,
		maxRetry:  5,
		sender:    sender,
	}
}

// Run 启动器，ctx 取消即退出
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkRetry(ctx, ob.ID, r.maxRetry)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender 正式投递：按投诉ID做分区键
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ComplaintOutbox) error {
		value, err := json.Marshal(map[string]any{
			"event_type":   ob.EventType,
			"complaint_id": ob.ComplaintID,
			"actor_id":     ob.ActorID,
			"payload":      json.RawMessage(ob.Payload),
			"created_at":   ob.CreatedAt,
		})
		if err != nil {
			return err
		}
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.ComplaintID), value)
	}
}

// LogSender 默认 sender：kafka 不可用时先打印
func LogSender(ctx context.Context, ob *model.ComplaintOutbox) error {
	log.Printf("OUTBOX SEND type=%s complaint=%d actor=%d payload=%s", ob.EventType, ob.ComplaintID, ob.ActorID, ob.Payload)
	return nil
}
