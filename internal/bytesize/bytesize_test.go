package bytesize

import (
	"testing"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		// Plain numbers, as the sample config writes quota limits
		{"plain zero", "0", 0, false},
		{"plain bytes", "1024", 1024, false},
		{"default quota limit", "104857600", 100 * MiB, false},

		// Bytes suffix
		{"bytes B", "1024B", 1024, false},
		{"bytes b lowercase", "1024b", 1024, false},

		// Binary units
		{"kibibytes Ki", "1Ki", 1024, false},
		{"kibibytes KiB", "1KiB", 1024, false},
		{"quota limit Mi", "100Mi", 100 * MiB, false},
		{"quota limit MiB", "100MiB", 100 * MiB, false},
		{"upload cap Gi", "1Gi", GiB, false},
		{"upload cap GiB", "1GiB", GiB, false},
		{"tebibytes Ti", "1Ti", TiB, false},
		{"tebibytes TiB", "1TiB", TiB, false},

		// Decimal units
		{"kilobytes K", "1K", 1000, false},
		{"kilobytes KB", "1KB", 1000, false},
		{"megabytes M", "100M", 100 * MB, false},
		{"megabytes MB", "100MB", 100 * MB, false},
		{"gigabytes G", "1G", GB, false},
		{"gigabytes GB", "1GB", GB, false},
		{"terabytes T", "1T", TB, false},
		{"terabytes TB", "1TB", TB, false},

		// Case insensitivity
		{"lowercase gi", "1gi", GiB, false},
		{"uppercase GI", "1GI", GiB, false},

		// Whitespace handling
		{"leading space", "  1Gi", GiB, false},
		{"trailing space", "1Gi  ", GiB, false},
		{"space between", "1 Gi", GiB, false},

		// Fractions
		{"fractional mebibytes", "1.5Mi", ByteSize(1.5 * float64(MiB)), false},
		{"fractional gibibytes", "0.5Gi", ByteSize(0.5 * float64(GiB)), false},

		// Error cases
		{"empty string", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"unknown unit", "1Xi", 0, true},
		{"negative number", "-1Gi", 0, true},
		{"no number", "Gi", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseByteSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseByteSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseByteSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestByteSize_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ByteSize
		wantErr bool
	}{
		{"unit form", "100Mi", 100 * MiB, false},
		{"numeric form", "104857600", 100 * MiB, false},
		{"invalid", "plenty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b ByteSize
			err := b.UnmarshalText([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("ByteSize.UnmarshalText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && b != tt.want {
				t.Errorf("ByteSize.UnmarshalText(%q) = %d, want %d", tt.input, b, tt.want)
			}
		})
	}
}

func TestByteSize_String(t *testing.T) {
	// The shapes quota display produces: used bytes at various magnitudes.
	tests := []struct {
		name  string
		input ByteSize
		want  string
	}{
		{"small document", 512, "512B"},
		{"kibibytes", 2 * KiB, "2.00KiB"},
		{"full default quota", 100 * MiB, "100.00MiB"},
		{"gibibytes", 1 * GiB, "1.00GiB"},
		{"tebibytes", 2 * TiB, "2.00TiB"},
		{"fractional gibibytes", ByteSize(1.5 * float64(GiB)), "1.50GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.String(); got != tt.want {
				t.Errorf("ByteSize(%d).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestByteSize_Conversions(t *testing.T) {
	size := 100 * MiB

	if got := size.Uint64(); got != 104857600 {
		t.Errorf("ByteSize.Uint64() = %d, want %d", got, 104857600)
	}
	if got := size.Int64(); got != 104857600 {
		t.Errorf("ByteSize.Int64() = %d, want %d", got, 104857600)
	}
}
