package plate

import "testing"

func TestIdentify(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		valid   bool
		want    string
		country Country
	}{
		{"kenya plain", "KDA123B", true, "KDA123B", Kenya},
		{"kenya no suffix", "KBZ456", true, "KBZ456", Kenya},
		{"kenya lowercase spaced", "kda 123b", true, "KDA123B", Kenya},
		{"kenya O second letter repaired", "KOA123B", true, "KDA123B", Kenya},
		{"kenya I third letter repaired", "KDI123B", true, "KDL123B", Kenya},
		{"kenya O third letter repaired", "KDO123B", true, "KDQ123B", Kenya},
		{"kenya noisy tail truncated", "KDA123BXX", true, "KDA123B", Kenya},
		{"uganda", "UAX321K", true, "UAX321K", Uganda},
		{"tanzania", "T123ABC", true, "T123ABC", Tanzania},
		{"tanzania spaced not truncated", "T 123 ABC", true, "T123ABC", Tanzania},
		{"rwanda", "RAD456C", true, "RAD456C", Rwanda},
		{"burundi", "D1234A", true, "D1234A", Burundi},
		{"south sudan", "SSD123A", true, "SSD123A", SouthSudan},
		{"garbage", "HELLO", false, "HELLO", ""},
		{"empty", "", false, "", ""},
		{"digits only", "123456", false, "123456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identify(tt.raw)
			if got.Valid != tt.valid {
				t.Fatalf("Identify(%q).Valid = %v, want %v", tt.raw, got.Valid, tt.valid)
			}
			if got.Normalized != tt.want {
				t.Errorf("Identify(%q).Normalized = %q, want %q", tt.raw, got.Normalized, tt.want)
			}
			if got.Country != tt.country {
				t.Errorf("Identify(%q).Country = %q, want %q", tt.raw, got.Country, tt.country)
			}
			if got.Original != tt.raw {
				t.Errorf("Identify(%q).Original = %q", tt.raw, got.Original)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"strict match passes", "KDA123B", true},
		{"kenya short digits", "KDA12", true},
		{"kenya digit suffix", "KDA1238", true},
		{"uganda two digits", "UAX32K", true},
		{"south sudan digit suffix", "SSD129", true},
		{"garbage fails", "HELLO", false},
		{"empty fails", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(Identify(tt.raw)); got != tt.want {
				t.Errorf("Verify(Identify(%q)) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
