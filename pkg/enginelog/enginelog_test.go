package enginelog

import "testing"

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("verbose"); err == nil {
		t.Fatalf("expected an error for an unknown log level")
	}
}

func TestInitAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if err := Init(level); err != nil {
			t.Errorf("Init(%q) = %v, want nil", level, err)
		}
		if Logger() == nil {
			t.Errorf("Logger() returned nil after Init(%q)", level)
		}
	}
}
