// Package sigstore persists periodic signal samples so the imbalance
// series can be inspected after a run.
package sigstore

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/yanun0323/logs"

	"main/internal/core"
	"main/internal/errors"
	"main/pkg/conn"
)

// Sample is one persisted signal observation.
type Sample struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	Timestamp    uint64 `gorm:"index"`
	Venue        uint8
	Symbol       uint32
	OFI          float64
	NOBI         float64
	WeightedNOBI float64
	CreatedAt    time.Time
}

func (Sample) TableName() string {
	return "signal_samples"
}

// Store samples every nth tick and writes them off the hot path. OnTick
// never blocks; samples arriving faster than they drain are dropped.
type Store struct {
	client *conn.Client
	every  uint64
	seen   uint64
	ch     chan Sample
}

func New(client *conn.Client, every int) (*Store, error) {
	if every < 1 {
		every = 1
	}
	if err := client.DB().AutoMigrate(&Sample{}); err != nil {
		return nil, errors.Wrap(err, "migrate signal samples")
	}
	return &Store{
		client: client,
		every:  uint64(every),
		ch:     make(chan Sample, 256),
	}, nil
}

func (s *Store) OnTick(t core.Tick) {
	n := atomic.AddUint64(&s.seen, 1)
	if n%s.every != 0 {
		return
	}
	sample := Sample{
		Timestamp:    uint64(t.Update.Timestamp),
		Venue:        uint8(t.Update.Venue),
		Symbol:       uint32(t.Update.Symbol),
		OFI:          t.OFI,
		NOBI:         t.NOBI,
		WeightedNOBI: t.WeightedNOBI,
	}
	select {
	case s.ch <- sample:
	default:
	}
}

// Run drains queued samples into the database until the context ends.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sample := <-s.ch:
			if err := s.client.DB().WithContext(ctx).Create(&sample).Error; err != nil {
				logs.Errorf("persist signal sample: %v", err)
			}
		}
	}
}
