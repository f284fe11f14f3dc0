package buildinfo

import "testing"

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		version string
		want    int64
	}{
		{"1.2.3", 123},
		{"0.0.1", 1},
		{"0.1.0", 10},
		{"2.10.4", 2104},
		{"v1.2.3", 123},
		{"1.2.3-rc1", 1231},
	}
	for _, tt := range tests {
		got, err := NormalizeVersion(tt.version)
		if err != nil {
			t.Fatalf("NormalizeVersion(%q) error: %v", tt.version, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeVersion(%q) = %d, want %d", tt.version, got, tt.want)
		}
	}
}

func TestNormalizeVersion_NoDigits(t *testing.T) {
	if _, err := NormalizeVersion("dev"); err == nil {
		t.Error("expected error for version without digits")
	}
}

func TestNormalizeVersion_Overflow(t *testing.T) {
	if _, err := NormalizeVersion("99999999999.99999999999.1"); err == nil {
		t.Error("expected error for version that overflows int64")
	}
}
