package ingest

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/yanun0323/logs"

	"main/internal/codec"
	"main/internal/errors"
	"main/internal/obs"
	"main/internal/schema"
)

// Feed reads update frames from an upstream websocket and hands them to the
// engine's source channel. Binary messages carry the fixed frame layout;
// text messages carry JSON ticks that go through the normalizer.
type Feed struct {
	url     string
	norm    *Normalizer
	metrics *obs.Metrics
}

func NewFeed(url string, norm *Normalizer, metrics *obs.Metrics) *Feed {
	return &Feed{url: url, norm: norm, metrics: metrics}
}

// Run dials the upstream and pumps decoded updates into out until the
// connection drops or the context ends. Malformed frames are counted and
// skipped; they never stop the feed.
func (f *Feed) Run(ctx context.Context, out chan<- schema.Update) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return errors.Wrap(err, "dial feed")
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	logs.Infof("feed connected: %s", f.url)
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read feed")
		}

		var u schema.Update
		switch msgType {
		case websocket.BinaryMessage:
			u, err = codec.DecodeUpdate(data)
		case websocket.TextMessage:
			u, err = f.decodeTick(data)
		default:
			continue
		}
		if err != nil {
			f.metrics.IncMalformedFrame()
			logs.Errorf("drop malformed frame: %v", err)
			continue
		}

		select {
		case out <- u:
		case <-ctx.Done():
			return nil
		}
	}
}

func (f *Feed) decodeTick(data []byte) (schema.Update, error) {
	var tick JSONTick
	if err := json.Unmarshal(data, &tick); err != nil {
		return schema.Update{}, errors.Wrap(err, "unmarshal tick")
	}
	return f.norm.Normalize(tick)
}
