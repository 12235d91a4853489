package stream

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("session-1")
	defer hub.Unregister(client)

	payload := []byte(`{"latitude":1,"longitude":2}`)
	hub.Broadcast("session-1", payload)

	select {
	case msg := <-client.Send:
		if string(msg) != string(payload) {
			t.Fatalf("unexpected message")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for message")
	}
}

func TestHubHelpers(t *testing.T) {
	ch := redisChannel("abc")
	if ch != "geolog:abc:fixes" {
		t.Fatalf("unexpected channel: %s", ch)
	}
	if sessionIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected session id")
	}
	if sessionIDFromChannel("bad") != "" {
		t.Fatalf("expected empty session id")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("session-2")
	hub.Unregister(client)
	_, ok := <-client.Send
	if ok {
		t.Fatalf("expected channel closed")
	}
}

// waitForFix republishes until the pattern subscription has attached and a
// frame arrives, or the deadline passes.
func waitForFix(t *testing.T, publish func() error, recv <-chan []byte, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if err := publish(); err != nil {
			t.Fatalf("publish: %v", err)
		}
		select {
		case msg := <-recv:
			if string(msg) != want {
				t.Fatalf("unexpected message: %s", msg)
			}
			return
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timeout waiting for %q", want)
		}
	}
}

func TestHubRedisBroadcastAndSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register("session-redis")
	defer hub.Unregister(ws)

	// With Redis configured, Broadcast delivers only via pub/sub, so this
	// asserts the full publish-subscribe round trip.
	waitForFix(t, func() error {
		hub.Broadcast("session-redis", []byte("fix"))
		return nil
	}, ws.Send, "fix")
}

func TestHubDeliversRemotePublish(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register("session-remote")
	defer hub.Unregister(ws)

	// A publish from another instance, not through this hub's Broadcast.
	remote := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer remote.Close()

	waitForFix(t, func() error {
		return remote.Publish(context.Background(), redisChannel("session-remote"), "remote-fix").Err()
	}, ws.Send, "remote-fix")
}

func TestHubConcurrentBroadcastUnregister(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.Broadcast("session-churn", []byte("fix"))
		}
	}()

	for i := 0; i < 1000; i++ {
		client := hub.Register("session-churn")
		hub.Unregister(client)
	}
	<-done
}
