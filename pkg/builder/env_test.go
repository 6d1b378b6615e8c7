package builder

import (
	"os"
	"testing"
)

func TestEnvOr(t *testing.T) {
	const key = "RESPIRA_TEST_ENV_OR"
	_ = os.Unsetenv(key)
	if got := EnvOr(key, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv(key, `"  value  "`)
	if got := EnvOr(key, "fallback"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestEnvIntOr(t *testing.T) {
	const key = "RESPIRA_TEST_ENV_INT"
	_ = os.Unsetenv(key)
	if got := EnvIntOr(key, 7); got != 7 {
		t.Fatalf("expected default int, got %d", got)
	}

	t.Setenv(key, "12")
	if got := EnvIntOr(key, 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}

	t.Setenv(key, "not-int")
	if got := EnvIntOr(key, 7); got != 7 {
		t.Fatalf("expected default on bad int, got %d", got)
	}
}

func TestEnvFloatOr(t *testing.T) {
	const key = "RESPIRA_TEST_ENV_FLOAT"
	t.Setenv(key, "0.25")
	if got := EnvFloatOr(key, 0.3); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	t.Setenv(key, "abc")
	if got := EnvFloatOr(key, 0.3); got != 0.3 {
		t.Fatalf("expected default on bad float, got %v", got)
	}
}

func TestEnvBoolOr(t *testing.T) {
	const key = "RESPIRA_TEST_ENV_BOOL"
	cases := map[string]bool{"yes": true, "ON": true, "1": true, "false": false, "off": false}
	for in, want := range cases {
		t.Setenv(key, in)
		if got := EnvBoolOr(key, !want); got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
	t.Setenv(key, "maybe")
	if got := EnvBoolOr(key, true); !got {
		t.Fatalf("expected default on bad bool")
	}
}

func TestEnvListOr(t *testing.T) {
	const key = "RESPIRA_TEST_ENV_LIST"
	t.Setenv(key, " a:9092, ,b:9092 ")
	got := EnvListOr(key, nil)
	if len(got) != 2 || got[0] != "a:9092" || got[1] != "b:9092" {
		t.Fatalf("unexpected list: %v", got)
	}
	t.Setenv(key, " , ")
	if got := EnvListOr(key, []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected default, got %v", got)
	}
}
