package command

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/internal/imageio"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		channels int
		message  string
	}{
		{"rgb", 40, 40, 3, "hello world"},
		{"rgba", 40, 40, 4, "Grüße aus Köln 👋"},
		{"gray", 60, 60, 1, "tab\tand\nnewline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := writeImage(t, t.TempDir(), "cover.png", tt.width, tt.height, tt.channels)

			stdout, _, err := runApp(t, "", "encode", "-i", img, "-m", tt.message, "-p", "s3cret")
			if err != nil {
				t.Fatalf("encode error = %v", err)
			}
			out := savedPath(t, stdout)
			if filepath.Dir(out) != filepath.Dir(img) {
				t.Errorf("output %s not next to input %s", out, img)
			}
			if !strings.HasPrefix(filepath.Base(out), "cover-") || filepath.Ext(out) != ".png" {
				t.Errorf("output name = %s, want cover-<hex>.png", filepath.Base(out))
			}

			stdout, _, err = runApp(t, "", "decode", "-i", out, "-p", "s3cret")
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if stdout != tt.message+"\n" {
				t.Errorf("decode output = %q, want %q", stdout, tt.message+"\n")
			}
		})
	}
}

func TestEncode_Prompts(t *testing.T) {
	img := writeImage(t, t.TempDir(), "cover.png", 40, 40, 3)

	// A blank message is rejected and asked again.
	stdin := strings.Join([]string{"", "   ", "from the prompt", "pw", ""}, "\n")
	stdout, stderr, err := runApp(t, stdin, "encode", "--image", img)
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	if strings.Count(stderr, "a value is required") != 2 {
		t.Errorf("stderr = %q, want two rejections", stderr)
	}
	out := savedPath(t, stdout)

	stdout, _, err = runApp(t, "", "decode", "-i", out, "-p", "pw")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if strings.TrimSpace(stdout) != "from the prompt" {
		t.Errorf("decode output = %q", stdout)
	}
}

func TestEncode_ImagePathPrompt(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, "cover.png", 40, 40, 3)

	stdin := strings.Join([]string{
		filepath.Join(dir, "missing.png"),
		filepath.Join(dir, "cover.png.jpg"),
		img,
		"msg",
		"pw",
		"",
	}, "\n")
	stdout, stderr, err := runApp(t, stdin, "encode")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	if strings.Count(stderr, "invalid image path") != 2 {
		t.Errorf("stderr = %q, want two rejected paths", stderr)
	}
	savedPath(t, stdout)
}

func TestEncode_PasskeyFromEnv(t *testing.T) {
	img := writeImage(t, t.TempDir(), "cover.png", 40, 40, 3)

	isolate(t)
	t.Setenv(EnvPasskey, "from-env")

	var out strings.Builder
	app := App()
	app.Reader = strings.NewReader("")
	app.Writer = &out
	app.ErrWriter = &strings.Builder{}
	if err := app.Run([]string{"plainsight", "encode", "-i", img, "-m", "env message"}); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	encoded := savedPath(t, out.String())

	stdout, _, err := runApp(t, "", "decode", "-i", encoded, "-p", "from-env")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if strings.TrimSpace(stdout) != "env message" {
		t.Errorf("decode output = %q", stdout)
	}
}

func TestEncode_OutputFormat(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, "cover.png", 40, 40, 3)

	tests := []struct {
		name    string
		args    []string
		wantExt string
		wantErr error
	}{
		{"format flag", []string{"--format", "bmp"}, ".bmp", nil},
		{"out extension", []string{"--out", filepath.Join(dir, "explicit.bmp")}, ".bmp", nil},
		{"flag beats extension", []string{"--format", "png", "--out", filepath.Join(dir, "mixed.bmp")}, ".bmp", nil},
		{"lossy format", []string{"--format", "jpeg"}, "", domain.ErrUnsupportedImage},
		{"lossy extension", []string{"--out", filepath.Join(dir, "lossy.jpg")}, "", domain.ErrUnsupportedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"encode", "-i", img, "-m", "m", "-p", "p"}, tt.args...)
			stdout, _, err := runApp(t, "", args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("encode error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("encode error = %v", err)
			}
			out := savedPath(t, stdout)
			if filepath.Ext(out) != tt.wantExt {
				t.Errorf("output = %s, want extension %s", out, tt.wantExt)
			}
			if _, _, err := imageio.Load(out); err != nil {
				t.Errorf("Load(%s) error = %v", out, err)
			}
		})
	}
}

func TestEncode_AlphaToBMP(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, "alpha.png", 40, 40, 4)

	_, _, err := runApp(t, "", "encode", "-i", img, "-m", "m", "-p", "p", "--format", "bmp")
	if !errors.Is(err, domain.ErrUnsupportedImage) {
		t.Fatalf("encode error = %v, want %v", err, domain.ErrUnsupportedImage)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("rejected encode left files behind: %v", entries)
	}

	stdout, _, err := runApp(t, "", "encode", "-i", img, "-m", "keep alpha", "-p", "p")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	stdout, _, err = runApp(t, "", "decode", "-i", savedPath(t, stdout), "-p", "p")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if strings.TrimSpace(stdout) != "keep alpha" {
		t.Errorf("decode = %q, want %q", stdout, "keep alpha")
	}
}

func TestEncode_OutputDirFromConfig(t *testing.T) {
	dir := t.TempDir()
	img := writeImage(t, dir, "cover.png", 40, 40, 3)
	outDir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("image:\n  output_dir: "+outDir+"\n  output_format: bmp\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runApp(t, "", "-c", cfgPath, "encode", "-i", img, "-m", "m", "-p", "p")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	out := savedPath(t, stdout)
	if filepath.Dir(out) != outDir || filepath.Ext(out) != ".bmp" {
		t.Errorf("output = %s, want a .bmp in %s", out, outDir)
	}
}

func TestEncode_JSON(t *testing.T) {
	img := writeImage(t, t.TempDir(), "cover.png", 40, 30, 3)

	stdout, _, err := runApp(t, "", "-o", "json", "encode", "-i", img, "-m", "m", "-p", "p")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}

	var res EncodeResult
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, stdout)
	}
	if res.Format != "png" || res.Width != 40 || res.Height != 30 {
		t.Errorf("result = %+v", res)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Errorf("Stat(%s) error = %v", res.Path, err)
	}
}

func TestEncode_Errors(t *testing.T) {
	dir := t.TempDir()
	small := writeImage(t, dir, "small.png", 8, 8, 3)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"too small", []string{"-i", small, "-m", "this will not fit", "-p", "p"}, domain.ErrCapacity},
		{"missing file", []string{"-i", filepath.Join(dir, "nope.png"), "-m", "m", "-p", "p"}, domain.ErrInvalidImagePath},
		{"two extensions", []string{"-i", filepath.Join(dir, "a.png.jpg"), "-m", "m", "-p", "p"}, domain.ErrInvalidImagePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, "", append([]string{"encode"}, tt.args...)...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("encode error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("failed encodes left files behind: %v", entries)
	}
}

func TestDecode_Errors(t *testing.T) {
	dir := t.TempDir()
	plain := writeImage(t, dir, "plain.png", 40, 40, 3)

	stdout, _, err := runApp(t, "", "encode", "-i", plain, "-m", "secret", "-p", "right")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	encoded := savedPath(t, stdout)

	tests := []struct {
		name     string
		image    string
		passkey  string
		wantErr  error
		wantText string
		wantExit int
	}{
		{"wrong passkey", encoded, "wrong", domain.ErrAuthentication, "wrong passkey", ExitWrongKey},
		{"no message", plain, "right", domain.ErrNoMessageFound, "no encoded message in the image", ExitNoSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runApp(t, "", "decode", "-i", tt.image, "-p", tt.passkey)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("decode error = %v, want %v", err, tt.wantErr)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want nothing on failure", stdout)
			}
			if got := Describe(err); got != tt.wantText {
				t.Errorf("Describe() = %q, want %q", got, tt.wantText)
			}
			if got := ExitCode(err); got != tt.wantExit {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantExit)
			}
		})
	}
}

func TestDecode_YAML(t *testing.T) {
	img := writeImage(t, t.TempDir(), "cover.png", 40, 40, 3)
	stdout, _, err := runApp(t, "", "encode", "-i", img, "-m", "yaml me", "-p", "p")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}

	stdout, _, err = runApp(t, "", "-o", "yaml", "decode", "-i", savedPath(t, stdout), "-p", "p")
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if stdout != "message: yaml me\n" {
		t.Errorf("stdout = %q, want %q", stdout, "message: yaml me\n")
	}
}

func TestInspect(t *testing.T) {
	img := writeImage(t, t.TempDir(), "cover.png", 40, 40, 3)

	stdout, _, err := runApp(t, "", "-o", "json", "inspect", "-i", img)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	var before domain.Inspection
	if err := json.Unmarshal([]byte(stdout), &before); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, stdout)
	}
	if before.Format != "png" || before.Width != 40 || before.Height != 40 || before.Channels != 3 {
		t.Errorf("geometry = %+v", before)
	}
	if before.PixelBytes != 4800 || before.CapacityBytes != 596 {
		t.Errorf("PixelBytes = %d, CapacityBytes = %d, want 4800, 596", before.PixelBytes, before.CapacityBytes)
	}
	if before.MessageFound {
		t.Error("MessageFound = true for a clean image")
	}

	stdout, _, err = runApp(t, "", "encode", "-i", img, "-m", "inspect me", "-p", "p")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	stdout, _, err = runApp(t, "", "-o", "json", "inspect", "-i", savedPath(t, stdout))
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	var after domain.Inspection
	if err := json.Unmarshal([]byte(stdout), &after); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !after.MessageFound || !after.TokenWellFormed || after.IssuedAt == nil || after.TokenBytes == 0 {
		t.Errorf("inspection of encoded image = %+v", after)
	}
}

func TestInspect_Text(t *testing.T) {
	img := writeImage(t, t.TempDir(), "cover.png", 40, 40, 4)

	stdout, _, err := runApp(t, "", "inspect", "-i", img)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{"format", "png", "channels", "capacity_bytes", "message_found", "no"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("text output missing %q:\n%s", want, stdout)
		}
	}
}
