package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/antonkazakov/dmline-server/internal/proto"
)

// Minimal terminal DM client: log in over REST, then chat over the socket.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	user := flag.String("user", "", "username")
	pass := flag.String("pass", "", "password")
	peer := flag.String("peer", "", "user to message")
	flag.Parse()

	if *user == "" || *pass == "" || *peer == "" {
		return fmt.Errorf("user, pass and peer are required")
	}

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	token, err := login(ctx, *base, *user, *pass)
	if err != nil {
		return err
	}

	wsURL := strings.Replace(*base, "http", "ws", 1) + "/ws?token=" + token
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	go func() {
		for {
			var frame map[string]any
			if readErr := wsjson.Read(ctx, conn, &frame); readErr != nil {
				cancel()
				return
			}
			switch frame["type"] {
			case proto.OutboundTypeUserStatus:
				fmt.Printf("* %v is now %s\n", frame["username"], onOff(frame["online"] == true))
			case proto.OutboundTypeError:
				fmt.Printf("! %v: %v\n", frame["code"], frame["msg"])
			default:
				fmt.Printf("[%v -> %v] %v\n", frame["from"], frame["to"], frame["content"])
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		msg := proto.MessageIn{FromUser: *user, ToUser: *peer, Content: text}
		if writeErr := wsjson.Write(ctx, conn, msg); writeErr != nil {
			return fmt.Errorf("send: %w", writeErr)
		}
	}
	return scanner.Err()
}

func login(ctx context.Context, base, user, pass string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": user, "password": pass})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: status %d", resp.StatusCode)
	}

	var auth struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return auth.Token, nil
}

func onOff(online bool) string {
	if online {
		return "online"
	}
	return "offline"
}
