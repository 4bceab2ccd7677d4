package logger

import "testing"

func TestLog_UsableBeforeInit(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	Log.Infow("[Test] before init", "key", "value")
}

func TestInit_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "bogus"} {
		Init(level)
		if Log == nil {
			t.Fatalf("Init(%q) left Log nil", level)
		}
	}
	if !Log.Desugar().Core().Enabled(0) {
		t.Error("unknown level should fall back to info")
	}
}
