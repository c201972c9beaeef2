package command

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
)

var listenAddr = regexp.MustCompile(`addr=(127\.0\.0\.1:\d+)`)

// startServe runs "serve" in the background and returns the bound address.
func startServe(t *testing.T, ctx context.Context, args ...string) (addr string, done <-chan error) {
	t.Helper()
	isolate(t)

	logs := &syncBuffer{}
	app := App()
	app.Reader = strings.NewReader("")
	app.Writer = &syncBuffer{}
	app.ErrWriter = logs

	ch := make(chan error, 1)
	go func() {
		ch <- app.RunContext(ctx, append([]string{"plainsight"}, args...))
	}()

	deadline := time.After(5 * time.Second)
	for {
		if m := listenAddr.FindStringSubmatch(logs.String()); m != nil {
			return m[1], ch
		}
		select {
		case err := <-ch:
			t.Fatalf("serve exited early: %v\n%s", err, logs.String())
		case <-deadline:
			t.Fatalf("serve did not start:\n%s", logs.String())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
		return nil
	}
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, done := startServe(t, ctx, "serve", "--addr", "127.0.0.1:0")

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		resp, err := http.Get("http://" + addr + path)
		if err != nil {
			t.Fatalf("GET %s error = %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}

	cancel()
	if err := waitDone(t, done); err != nil {
		t.Errorf("serve error = %v", err)
	}
}

func TestServe_BadTLS(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "server:\n" +
		"  tls_cert_file: " + filepath.Join(dir, "missing.crt") + "\n" +
		"  tls_key_file: " + filepath.Join(dir, "missing.key") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := runApp(t, "", "-c", cfgPath, "serve", "--addr", "127.0.0.1:0")
	if err == nil {
		t.Error("serve started without its certificate")
	}
}

func TestServe_AddrInUse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, done := startServe(t, ctx, "serve", "--addr", "127.0.0.1:0")

	_, _, err := runApp(t, "", "serve", "--addr", addr)
	if err == nil {
		t.Error("second serve on the same address succeeded")
	}

	cancel()
	waitDone(t, done)
}

func TestServe_ReloadsLogLevel(t *testing.T) {
	defer logger.SetLevel("info")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("log:\n  level: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, done := startServe(t, ctx, "-c", cfgPath, "serve", "--addr", "127.0.0.1:0")

	if err := os.WriteFile(cfgPath, []byte("log:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for logger.GetLevel() != "debug" {
		if time.Now().After(deadline) {
			t.Fatalf("log level = %s after reload, want debug", logger.GetLevel())
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	if err := waitDone(t, done); err != nil {
		t.Errorf("serve error = %v", err)
	}
}
