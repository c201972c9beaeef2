package prompt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsNonEmpty(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"a", true},
		{" secret ", true},
	}

	for _, tt := range tests {
		if got := IsNonEmpty(tt.in); got != tt.want {
			t.Errorf("IsNonEmpty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPrompter_NotInteractive(t *testing.T) {
	p := New(strings.NewReader(""), &bytes.Buffer{})
	if p.Interactive() {
		t.Error("Interactive() = true for a string reader")
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"newline", "hello\n", "hello", nil},
		{"crlf", "hello\r\n", "hello", nil},
		{"no trailing newline", "hello", "hello", nil},
		{"keeps spaces", "  two words  \n", "  two words  ", nil},
		{"eof", "", "", ErrAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(tt.input), &out)

			got, err := p.Line("Message")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Line() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
			if out.String() != "Message: " {
				t.Errorf("question = %q", out.String())
			}
		})
	}
}

func TestNonEmpty_Retries(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("\n   \nfinally\n"), &out)

	got, err := p.NonEmpty("Message")
	if err != nil {
		t.Fatalf("NonEmpty() error = %v", err)
	}
	if got != "finally" {
		t.Errorf("NonEmpty() = %q, want finally", got)
	}
	if n := strings.Count(out.String(), "Message: "); n != 3 {
		t.Errorf("asked %d times, want 3", n)
	}
	if n := strings.Count(out.String(), "a value is required"); n != 2 {
		t.Errorf("reported %d rejections, want 2", n)
	}
}

func TestNonEmpty_EOF(t *testing.T) {
	p := New(strings.NewReader("\n\n"), &bytes.Buffer{})

	if _, err := p.NonEmpty("Message"); !errors.Is(err, ErrAborted) {
		t.Errorf("NonEmpty() error = %v, want ErrAborted", err)
	}
}

func TestImagePath(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(valid, []byte("not checked here"), 0o600); err != nil {
		t.Fatal(err)
	}

	input := strings.Join([]string{
		filepath.Join(dir, "missing.png"),
		filepath.Join(dir, "photo.png.jpg"),
		filepath.Join(dir, "photo"),
		"  " + valid + "  ",
	}, "\n") + "\n"

	var out bytes.Buffer
	p := New(strings.NewReader(input), &out)

	got, err := p.ImagePath("Image")
	if err != nil {
		t.Fatalf("ImagePath() error = %v", err)
	}
	if got != valid {
		t.Errorf("ImagePath() = %q, want %q", got, valid)
	}
	if n := strings.Count(out.String(), "Image: "); n != 4 {
		t.Errorf("asked %d times, want 4", n)
	}
}

func TestChoice(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("maybe\n ENCODE \n"), &out)

	got, err := p.Choice("Choose mode", "encode", "decode")
	if err != nil {
		t.Fatalf("Choice() error = %v", err)
	}
	if got != "encode" {
		t.Errorf("Choice() = %q, want encode", got)
	}
	if !strings.Contains(out.String(), "Choose mode (encode/decode): ") {
		t.Errorf("question = %q", out.String())
	}
	if !strings.Contains(out.String(), "please choose one of: encode, decode") {
		t.Errorf("rejection not reported: %q", out.String())
	}
}

func TestSecret_NotInteractive(t *testing.T) {
	p := New(strings.NewReader("\ns3cr3t pass\n"), &bytes.Buffer{})

	got, err := p.Secret("Passkey")
	if err != nil {
		t.Fatalf("Secret() error = %v", err)
	}
	if got != "s3cr3t pass" {
		t.Errorf("Secret() = %q", got)
	}
}

func TestAsk_NilValidator(t *testing.T) {
	p := New(strings.NewReader("\n"), &bytes.Buffer{})

	got, err := p.Ask("Anything", nil)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "" {
		t.Errorf("Ask() = %q, want empty", got)
	}
}
