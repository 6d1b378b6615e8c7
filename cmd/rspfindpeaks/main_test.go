package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/joeydtaylor/respira/pkg/builder"
)

func fiveCyclesText() string {
	var b strings.Builder
	for _, v := range builder.SimulateCycles(1, 100, 100, 100, 100, 100) {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSimulatedJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-simulate", "30", "-sampling-rate", "100")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var l builder.Landmarks
	if err := json.Unmarshal([]byte(out), &l); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(l.Peaks) < 4 || len(l.Peaks) != len(l.Troughs) {
		t.Fatalf("unexpected landmarks %+v", l)
	}
	for i := range l.Peaks {
		if l.Troughs[i] >= l.Peaks[i] {
			t.Fatalf("trough %d not before peak %d", l.Troughs[i], l.Peaks[i])
		}
	}
	if !strings.Contains(errOut, "khodadad2018") {
		t.Fatalf("summary missing method: %q", errOut)
	}
}

func TestStdinText(t *testing.T) {
	code, out, errOut := runCLI(t, fiveCyclesText(), "-in", "-", "-format", "text", "-method", "Khodadad")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 pairs, got %q", out)
	}
	for _, line := range lines {
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			t.Fatalf("malformed line %q", line)
		}
		trough, _ := strconv.Atoi(parts[0])
		peak, _ := strconv.Atoi(parts[1])
		if trough >= peak {
			t.Fatalf("trough %d not before peak %d", trough, peak)
		}
	}
}

func TestFileInputWritesParquet(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rsp.txt")
	if err := os.WriteFile(in, []byte(fiveCyclesText()), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "landmarks.parquet")

	code, out, errOut := runCLI(t, "", "-in", in, "-out", outPath)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var want builder.Landmarks
	if err := json.Unmarshal([]byte(out), &want); err != nil {
		t.Fatalf("decode: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := builder.ReadLandmarksParquet(f)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if len(got.Peaks) != len(want.Peaks) || len(got.Troughs) != len(want.Troughs) {
		t.Fatalf("parquet %+v, stdout %+v", got, want)
	}
	for i := range want.Peaks {
		if got.Peaks[i] != want.Peaks[i] || got.Troughs[i] != want.Troughs[i] {
			t.Fatalf("parquet %+v, stdout %+v", got, want)
		}
	}
}

func TestUnknownMethodListsChoices(t *testing.T) {
	code, out, errOut := runCLI(t, fiveCyclesText(), "-in", "-", "-method", "bogus")
	if code != exitUsage {
		t.Fatalf("expected exit %d, got %d", exitUsage, code)
	}
	if out != "" {
		t.Fatalf("unexpected output %q", out)
	}
	for _, m := range builder.Methods() {
		if !strings.Contains(errOut, string(m)) {
			t.Fatalf("error %q does not list %s", errOut, m)
		}
	}
}

func TestNoZeroCrossingFails(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
	}
	code, _, errOut := runCLI(t, b.String(), "-in", "-")
	if code != exitFailed {
		t.Fatalf("expected exit %d, got %d", exitFailed, code)
	}
	if !strings.Contains(errOut, "zero crossing") {
		t.Fatalf("unexpected error %q", errOut)
	}
}

func TestUsageErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"-in", "x.txt", "-simulate", "10"},
		{"-simulate", "10", "-format", "xml"},
		{"-simulate", "10", "extra"},
		{"-no-such-flag"},
	}
	for _, args := range cases {
		if code, _, _ := runCLI(t, "", args...); code != exitUsage {
			t.Fatalf("args %v: expected exit %d, got %d", args, exitUsage, code)
		}
	}
}

func TestMissingFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-in", filepath.Join(t.TempDir(), "absent.txt"))
	if code != exitFailed {
		t.Fatalf("expected exit %d, got %d", exitFailed, code)
	}
	if !strings.Contains(errOut, "absent.txt") {
		t.Fatalf("unexpected error %q", errOut)
	}
}

func TestHelp(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-h")
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(errOut, "-amplitude-min") {
		t.Fatalf("usage missing flags: %q", errOut)
	}
}

func TestMethodFromEnv(t *testing.T) {
	t.Setenv("RESPIRA_METHOD", "bogus")
	if code, _, _ := runCLI(t, "", "-simulate", "10"); code != exitUsage {
		t.Fatalf("expected env method to be validated, got exit %d", code)
	}
}
