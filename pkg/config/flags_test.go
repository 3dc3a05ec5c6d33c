package config

import "testing"

func TestInitArgvConsumesPrefixed(t *testing.T) {
	argv := []string{"myapp", "--csdbg-color", "--verbose", "--csdbg-cache-capacity=1024", "input.txt"}

	retained, filtered := InitArgv(argv)

	wantRetained := []string{"color", "cache-capacity=1024"}
	if len(retained) != len(wantRetained) {
		t.Fatalf("retained = %v; want %v", retained, wantRetained)
	}
	for i := range wantRetained {
		if retained[i] != wantRetained[i] {
			t.Errorf("retained[%d] = %q; want %q", i, retained[i], wantRetained[i])
		}
	}

	wantFiltered := []string{"myapp", "--verbose", "input.txt"}
	if len(filtered) != len(wantFiltered) {
		t.Fatalf("filtered = %v; want %v", filtered, wantFiltered)
	}
	for i := range wantFiltered {
		if filtered[i] != wantFiltered[i] {
			t.Errorf("filtered[%d] = %q; want %q", i, filtered[i], wantFiltered[i])
		}
	}
}

func TestInitArgvNoneConsumed(t *testing.T) {
	argv := []string{"myapp", "--verbose"}
	retained, filtered := InitArgv(argv)
	if len(retained) != 0 {
		t.Errorf("retained = %v; want empty", retained)
	}
	if len(filtered) != len(argv) {
		t.Errorf("filtered = %v; want %v", filtered, argv)
	}
}
