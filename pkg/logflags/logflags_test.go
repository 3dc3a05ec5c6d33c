package logflags

import "testing"

func resetFlags() {
	hooks = false
	namespaceFlag = false
	render = false
	lifecycle = false
}

func TestSetupNoLog(t *testing.T) {
	resetFlags()
	if err := Setup(false, ""); err != nil {
		t.Fatalf("Setup(false, \"\"): %v", err)
	}
	if Hooks() || Namespace() || Render() || Lifecycle() {
		t.Fatalf("Setup(false, \"\") left a flag set")
	}
}

func TestSetupNoLogWithLogstrFails(t *testing.T) {
	resetFlags()
	if err := Setup(false, "hooks"); err == nil {
		t.Fatalf("Setup(false, \"hooks\") did not fail")
	}
}

func TestSetupDefaultsToHooks(t *testing.T) {
	resetFlags()
	if err := Setup(true, ""); err != nil {
		t.Fatalf("Setup(true, \"\"): %v", err)
	}
	if !Hooks() {
		t.Fatalf("Setup(true, \"\") should default to the hooks subsystem")
	}
	if Namespace() || Render() || Lifecycle() {
		t.Fatalf("Setup(true, \"\") enabled an unrequested subsystem")
	}
}

func TestSetupEnablesNamedSubsystems(t *testing.T) {
	resetFlags()
	if err := Setup(true, "namespace,render"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if !Namespace() || !Render() {
		t.Fatalf("Setup(true, \"namespace,render\") did not enable both")
	}
	if Hooks() || Lifecycle() {
		t.Fatalf("Setup(true, \"namespace,render\") enabled an unrequested subsystem")
	}
}

func TestLoggersRespectTheirFlag(t *testing.T) {
	resetFlags()
	if err := Setup(true, "render"); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if HooksLogger().Logger.Level == RenderLogger().Logger.Level {
		t.Fatalf("HooksLogger and RenderLogger should not share a level when only render is enabled")
	}
}
