package command

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/plainsight/plainsight-go/internal/imageio"
)

// isolate keeps the user's config file and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvPasskey, "")
	t.Setenv(EnvDebug, "")
}

// runApp runs the application with the given stdin and returns what it
// wrote to stdout and stderr.
func runApp(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	isolate(t)

	var out, errOut bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut

	err = app.Run(append([]string{"plainsight"}, args...))
	return out.String(), errOut.String(), err
}

// writeImage writes a patterned width x height image with the given
// channel count and returns its path.
func writeImage(t *testing.T, dir, name string, width, height, channels int) string {
	t.Helper()
	r := imageio.NewRaster(width, height, channels)
	for i := range r.Pix {
		r.Pix[i] = byte(i * 7)
	}
	if channels == 4 {
		for i := 3; i < len(r.Pix); i += 4 {
			r.Pix[i] = 200
		}
	}

	format := imageio.Format(strings.TrimPrefix(filepath.Ext(name), "."))
	path := filepath.Join(dir, name)
	if err := imageio.Save(path, r, format); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return path
}

// savedPath extracts the output path from the encode success message.
func savedPath(t *testing.T, stdout string) string {
	t.Helper()
	const prefix = "Text successfully encoded into the image and saved at "
	line := strings.TrimSpace(stdout)
	if i := strings.LastIndex(line, "\n"); i >= 0 {
		line = line[i+1:]
	}
	if !strings.HasPrefix(line, prefix) {
		t.Fatalf("unexpected encode output %q", stdout)
	}
	return strings.TrimPrefix(line, prefix)
}

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
