// Package gateway fans the published update stream out to websocket
// clients. Slow clients lose oldest frames instead of stalling the engine.
package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yanun0323/logs"

	"main/internal/bus"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// lagNotice tells a client how many frames it missed since its last read.
type lagNotice struct {
	Type    string `json:"type"`
	Dropped uint64 `json:"dropped"`
}

// Server owns the HTTP listener and one subscriber per connected client.
type Server struct {
	broker   *bus.Broker
	queueCap int
}

func NewServer(broker *bus.Broker, queueCap int) *Server {
	if queueCap < 1 {
		queueCap = 1
	}
	return &Server{broker: broker, queueCap: queueCap}
}

// Run serves until the context ends, then shuts the listener down.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		s.handleStream(ctx, w, r)
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logs.Infof("gateway listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleStream(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logs.Errorf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	sub := s.broker.Subscribe(s.queueCap)
	defer s.broker.Unsubscribe(sub)

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Reads only serve disconnect detection; clients send nothing useful.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	logs.Infof("client connected: %s", conn.RemoteAddr())
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		default:
		}

		d, err := sub.Next(connCtx)
		if err != nil {
			return
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if d.Lagged > 0 {
			if err := conn.WriteJSON(lagNotice{Type: "lag", Dropped: d.Lagged}); err != nil {
				return
			}
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, d.Frame); err != nil {
			return
		}
	}
}
