package domain

import "testing"

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputFormatText, false},
		{"text", OutputFormatText, false},
		{"json", OutputFormatJSON, false},
		{"yaml", OutputFormatYAML, false},
		{"dot", OutputFormatDOT, false},
		{"bracket", OutputFormatBracket, false},
		{"html", "", true},
		{"JSON", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if tt.wantErr && !IsCode(err, ErrCodeUnsupportedFormat) {
				t.Errorf("expected %s, got %v", ErrCodeUnsupportedFormat, err)
			}
		})
	}
}
