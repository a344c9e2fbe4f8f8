package weighstream

import (
	"net"
	"testing"
	"time"
)

func TestParseFrame(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		line string
		want float64
		ok   bool
	}{
		{"stable frame", "[14:03:22.118]IN: )0   480   12540", 480, true},
		{"other channel", "[00:00:01.000]IN )3 990 1", 990, true},
		{"no timestamp", ")0   480   12540", 0, false},
		{"outbound line", "[14:03:22.118]OUT: )0   480   12540", 0, false},
		{"garbage", "hello", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := parseFrame(tt.line, now)
			if ok != tt.ok {
				t.Fatalf("parseFrame(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && r.Weight != tt.want {
				t.Errorf("parseFrame(%q) weight = %v, want %v", tt.line, r.Weight, tt.want)
			}
		})
	}

	r, ok := parseFrame("[14:03:22.118]IN: )0   480   12540", now)
	if !ok {
		t.Fatal("frame did not parse")
	}
	if r.At.Hour() != 14 || r.At.Minute() != 3 || r.At.Second() != 22 {
		t.Errorf("frame clock = %v, want 14:03:22", r.At)
	}
	if y, m, d := r.At.Date(); y != 2025 || m != time.March || d != 14 {
		t.Errorf("frame date = %v, want anchored to now", r.At)
	}
}

func TestServerBroadcastsToSubscribers(t *testing.T) {
	s := NewServer("127.0.0.1:0", testLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	ch, cancel := s.Subscribe()
	defer cancel()

	conn, err := net.Dial("tcp", s.Addr())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("[14:03:22.118]IN: )0   480   12540\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case r := <-ch:
		if r.Weight != 480 {
			t.Errorf("reading = %v, want 480", r.Weight)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestServerUnsubscribeStopsDelivery(t *testing.T) {
	s := NewServer("127.0.0.1:0", testLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	ch, cancel := s.Subscribe()
	cancel()

	s.broadcast(Reading{Weight: 1})
	select {
	case r := <-ch:
		t.Fatalf("received %v after unsubscribe", r.Weight)
	default:
	}
}

func TestServerStopIsIdempotent(t *testing.T) {
	s := NewServer("127.0.0.1:0", testLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
	s.Stop()
}
