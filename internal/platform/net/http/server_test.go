package http

import (
	"context"
	"io"
	"net"
	stdhttp "net/http"
	"testing"
	"time"

	"tripmaker/internal/platform/config"
)

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer(config.New().Prefix("TM_SRV_UNSET_"))
	if s.Addr() != DefaultPort {
		t.Fatalf("addr %q", s.Addr())
	}
	if s.String() != "http "+DefaultPort {
		t.Fatalf("string %q", s.String())
	}
}

func TestNewServer_FromConfig(t *testing.T) {
	t.Setenv("TM_SRV_PORT", ":9999")
	t.Setenv("TM_SRV_WRITE_TIMEOUT", "5s")
	s := NewServer(config.New().Prefix("TM_SRV_"))
	if s.Addr() != ":9999" || s.srv.WriteTimeout != 5*time.Second {
		t.Fatalf("addr %q write timeout %v", s.Addr(), s.srv.WriteTimeout)
	}
}

func TestServeListener_ServesAndDrains(t *testing.T) {
	s := NewServer(config.New().Prefix("TM_SRV_UNSET_"))
	s.Router().Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	resp, err := stdhttp.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(b) != "pong" {
		t.Fatalf("body %q", b)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
