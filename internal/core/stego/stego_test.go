package stego

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/pkg/bitcodec"
)

func randomBuffer(n int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.UintN(256))
	}
	return buf
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{3, 0},
		{len(bitcodec.Terminator), 0},
		{len(bitcodec.Terminator) + 7, 0},
		{len(bitcodec.Terminator) + 8, 1},
		{100 * 100 * 3, (100*100*3 - len(bitcodec.Terminator)) / 8},
	}

	for _, tt := range tests {
		if got := Capacity(tt.n); got != tt.want {
			t.Errorf("Capacity(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestEmbedExtract_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		message string
	}{
		{"ascii", 100 * 100 * 3, "hello world"},
		{"unicode", 100 * 100 * 3, "This is a secret message 這是一個測試訊息"},
		{"empty", 64, ""},
		{"rgba", 50 * 50 * 4, strings.Repeat("token-", 100)},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := randomBuffer(tt.size, uint64(i+1))

			out, err := Embed(buf, []byte(tt.message))
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if len(out) != len(buf) {
				t.Fatalf("len(out) = %d, want %d", len(out), len(buf))
			}

			got, err := Extract(out)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if got != tt.message {
				t.Errorf("Extract() = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestEmbed_ExactCapacity(t *testing.T) {
	payload := []byte("abcd")
	buf := make([]byte, RequiredBytes(len(payload)))

	out, err := Embed(buf, payload)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	got, err := Extract(out)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != string(payload) {
		t.Errorf("Extract() = %q, want %q", got, payload)
	}

	if _, err := Embed(buf[:len(buf)-1], payload); !errors.Is(err, domain.ErrCapacity) {
		t.Errorf("Embed() one byte short error = %v, want ErrCapacity", err)
	}
}

func TestEmbed_Capacity(t *testing.T) {
	buf := []byte{1, 2, 3}
	_, err := Embed(buf, []byte(strings.Repeat("x", 1000)))
	if !errors.Is(err, domain.ErrCapacity) {
		t.Fatalf("Embed() error = %v, want ErrCapacity", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3}) {
		t.Error("Embed() modified the input buffer on failure")
	}
}

func TestEmbed_OnlyLSBsChange(t *testing.T) {
	buf := randomBuffer(4096, 42)
	orig := bytes.Clone(buf)
	payload := []byte("gAAAAABlZ...")

	out, err := Embed(buf, payload)
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	if !bytes.Equal(buf, orig) {
		t.Fatal("Embed() mutated the caller's buffer")
	}

	written := RequiredBytes(len(payload))
	for i := range out {
		if out[i]&0xFE != orig[i]&0xFE {
			t.Fatalf("byte %d: upper bits changed %08b -> %08b", i, orig[i], out[i])
		}
		if i >= written && out[i] != orig[i] {
			t.Fatalf("byte %d past the payload changed", i)
		}
	}
}

func TestExtract_NoMessage(t *testing.T) {
	t.Run("all zero", func(t *testing.T) {
		_, err := Extract(make([]byte, 100*100*3))
		if !errors.Is(err, domain.ErrNoMessageFound) {
			t.Errorf("Extract() error = %v, want ErrNoMessageFound", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Extract(nil)
		if !errors.Is(err, domain.ErrNoMessageFound) {
			t.Errorf("Extract() error = %v, want ErrNoMessageFound", err)
		}
	})

	t.Run("random", func(t *testing.T) {
		buf := randomBuffer(100*100*3, 7)
		if bitcodec.FindMarker(bitcodec.LSBs(buf), bitcodec.Terminator) >= 0 {
			t.Skip("seeded buffer happens to contain the terminator")
		}
		_, err := Extract(buf)
		if !errors.Is(err, domain.ErrNoMessageFound) {
			t.Errorf("Extract() error = %v, want ErrNoMessageFound", err)
		}
	})
}

// lsbBuffer returns a buffer whose LSBs spell out bits.
func lsbBuffer(bits bitcodec.Bits) []byte {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		buf[i] = 0xA0 | b
	}
	return buf
}

func TestExtract_TrailingBits(t *testing.T) {
	bits := append(bitcodec.MustParseBits("010"), bitcodec.Terminator...)

	_, err := Extract(lsbBuffer(bits))
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("Extract() error = %v, want ErrDecode", err)
	}
	if !errors.Is(err, bitcodec.ErrTrailingBits) {
		t.Errorf("Extract() error = %v, want cause ErrTrailingBits", err)
	}
}

func TestExtract_InvalidUTF8(t *testing.T) {
	payload := []byte{0xC3, 0x28}
	bits := append(bitcodec.ToBits(payload), bitcodec.Terminator...)
	buf := lsbBuffer(bits)

	if _, err := Extract(buf); !errors.Is(err, domain.ErrDecode) {
		t.Errorf("Extract() error = %v, want ErrDecode", err)
	}

	raw, err := ExtractBytes(buf)
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if !bytes.Equal(raw, payload) {
		t.Errorf("ExtractBytes() = %x, want %x", raw, payload)
	}
}

func BenchmarkEmbed(b *testing.B) {
	buf := randomBuffer(1920*1080*3, 1)
	payload := bytes.Repeat([]byte("a"), 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Embed(buf, payload)
	}
}

func BenchmarkExtract(b *testing.B) {
	buf, err := Embed(randomBuffer(1920*1080*3, 1), bytes.Repeat([]byte("a"), 1024))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Extract(buf)
	}
}
