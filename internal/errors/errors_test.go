package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("database locked"), "Error: database locked"},
		{"wrapped error", errors.New("failed to load config: permission denied"), "Error: failed to load config: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []interface{}
		want   string
	}{
		{"no args", "storage not initialized", nil, "Error: storage not initialized"},
		{"one arg", "habit %q not found", []interface{}{"Read"}, `Error: habit "Read" not found`},
		{"several args", "connection to %s:%d failed", []interface{}{"localhost", 5432}, "Error: connection to localhost:5432 failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Formatf(tt.format, tt.args...); got != tt.want {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, got, tt.want)
			}
		})
	}
}

// runExitSubprocess re-runs the named test in a subprocess with marker set,
// so the os.Exit inside Fatal kills the child instead of the test binary.
func runExitSubprocess(t *testing.T, name, marker string) (error, string) {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run="+name)
	cmd.Env = append(os.Environ(), marker+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	return cmd.Run(), stderr.String()
}

func TestFatal(t *testing.T) {
	if os.Getenv("STRIDE_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	err, stderr := runExitSubprocess(t, "TestFatal", "STRIDE_TEST_FATAL")
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Fatal() subprocess did not exit with an error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr, "Error: test error") {
		t.Errorf("Fatal() stderr = %q, want to contain %q", stderr, "Error: test error")
	}
}

func TestFatal_NilIsNoOp(t *testing.T) {
	if os.Getenv("STRIDE_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	if err, _ := runExitSubprocess(t, "TestFatal_NilIsNoOp", "STRIDE_TEST_FATAL_NIL"); err != nil {
		t.Errorf("Fatal(nil) should return normally, subprocess failed: %v", err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("STRIDE_TEST_FATALF") == "1" {
		Fatalf("connection to %s:%d failed", "localhost", 5432)
		return
	}

	err, stderr := runExitSubprocess(t, "TestFatalf", "STRIDE_TEST_FATALF")
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Fatalf() subprocess did not exit with an error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatalf() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr, "Error: connection to localhost:5432 failed") {
		t.Errorf("Fatalf() stderr = %q, want to contain %q", stderr, "Error: connection to localhost:5432 failed")
	}
}
