// Command inspect connects to a running gateway and prints the decoded
// update stream, one line per frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"main/internal/codec"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8080/stream", "Gateway stream URL")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, *addr, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", *addr, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Fatalf("read: %v", err)
		}
		switch msgType {
		case websocket.BinaryMessage:
			u, err := codec.DecodeUpdate(data)
			if err != nil {
				fmt.Printf("bad frame (%d bytes): %v\n", len(data), err)
				continue
			}
			fmt.Println(u.Debug())
		case websocket.TextMessage:
			fmt.Printf("notice: %s\n", data)
		}
	}
}
