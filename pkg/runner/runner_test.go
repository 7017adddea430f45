package runner

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("tests use sh")
	}

	tests := map[string]struct {
		script       string
		wantExitCode int
		wantStdout   string
		wantStderr   string
	}{
		"zero exit captures stdout": {
			script:     "echo hello",
			wantStdout: "hello\n",
		},
		"nonzero exit captures stderr": {
			script:       "echo boom >&2; exit 3",
			wantExitCode: 3,
			wantStderr:   "boom\n",
		},
		"nonzero exit with empty stderr": {
			script:       "exit 1",
			wantExitCode: 1,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := New()
			res, err := r.Run(context.Background(), "", "sh", "-c", tc.script)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if res.ExitCode != tc.wantExitCode {
				t.Errorf("ExitCode = %d, want %d", res.ExitCode, tc.wantExitCode)
			}
			if string(res.Stdout) != tc.wantStdout {
				t.Errorf("Stdout = %q, want %q", res.Stdout, tc.wantStdout)
			}
			if string(res.Stderr) != tc.wantStderr {
				t.Errorf("Stderr = %q, want %q", res.Stderr, tc.wantStderr)
			}
		})
	}
}

func TestRunWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("tests use sh")
	}

	dir := t.TempDir()
	r := New()

	res, err := r.Run(context.Background(), dir, "sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got := strings.TrimSpace(string(res.Stdout))
	// Resolve symlinks so the comparison survives /tmp -> /private/tmp.
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("pwd = %q, want %q", got, dir)
	}
}

func TestRunMissingCommand(t *testing.T) {
	r := New()
	_, err := r.Run(context.Background(), "", filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Run() expected error for missing command")
	}
}
