package toolchain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunCapturesOutput(t *testing.T) {
	result, err := Run(context.Background(), Options{}, "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", result.ExitCode)
	}
	if strings.TrimSpace(result.Stdout) != "out" {
		t.Fatalf("stdout = %q, want out", result.Stdout)
	}
	if strings.TrimSpace(result.Stderr) != "err" {
		t.Fatalf("stderr = %q, want err", result.Stderr)
	}
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()

	result, err := Run(context.Background(), Options{Dir: dir}, "pwd")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := strings.TrimSpace(result.Stdout); !strings.HasSuffix(got, trimPrivatePrefix(dir)) {
		t.Fatalf("pwd = %q, want suffix %q", got, dir)
	}
}

// macOS temp dirs live under /private but report as /var symlinks; compare
// on the stable suffix.
func trimPrivatePrefix(dir string) string {
	return strings.TrimPrefix(dir, "/private")
}

func TestRunEnvOverride(t *testing.T) {
	result, err := Run(context.Background(), Options{
		Env: map[string]string{"NXBUILD_TEST_VAR": "42"},
	}, "sh", "-c", "echo $NXBUILD_TEST_VAR")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if strings.TrimSpace(result.Stdout) != "42" {
		t.Fatalf("stdout = %q, want 42", result.Stdout)
	}
}

func TestRunToolNotFound(t *testing.T) {
	_, err := Run(context.Background(), Options{}, "definitely-not-a-real-tool-xyz")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("err = %v, want ErrToolNotFound", err)
	}
}

func TestRunNonZeroExit(t *testing.T) {
	result, err := Run(context.Background(), Options{}, "sh", "-c", "echo broken >&2; exit 3")
	if !errors.Is(err, ErrToolFailed) {
		t.Fatalf("err = %v, want ErrToolFailed", err)
	}

	if result == nil || result.ExitCode != 3 {
		t.Fatalf("result = %+v, want exit code 3", result)
	}
	if !strings.Contains(err.Error(), "exit code 3") {
		t.Fatalf("error %q does not mention the exit code", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("error %q does not carry stderr", err)
	}
}

func TestRunTimeout(t *testing.T) {
	_, err := Run(context.Background(), Options{Timeout: 50 * time.Millisecond}, "sleep", "5")
	if !errors.Is(err, ErrToolTimeout) {
		t.Fatalf("err = %v, want ErrToolTimeout", err)
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "single line", input: "boom\n", want: "boom"},
		{name: "skips leading blanks", input: "\n\n  \nactual error\nmore\n", want: "actual error"},
		{name: "trims whitespace", input: "  padded  \n", want: "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstLine(tt.input); got != tt.want {
				t.Fatalf("firstLine = %q, want %q", got, tt.want)
			}
		})
	}
}
