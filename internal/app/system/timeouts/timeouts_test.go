package timeouts

import (
	"testing"
	"time"
)

func TestConfigureFromEnv(t *testing.T) {
	defer Reset()
	t.Setenv("TIMEOUT_PING", "750ms")
	t.Setenv("TIMEOUT_CONNECT", "not-a-duration")
	t.Setenv("TIMEOUT_SCHEMA", "-5s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("configured: got %d, want 1", n)
	}
	if Ping() != 750*time.Millisecond {
		t.Errorf("Ping: got %v", Ping())
	}
	if Connect() != DefaultConnect {
		t.Errorf("Connect: got %v, want default", Connect())
	}
	if Schema() != DefaultSchema {
		t.Errorf("Schema: got %v, want default", Schema())
	}
}
