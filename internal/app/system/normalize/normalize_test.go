package normalize

import "testing"

func TestUsername(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ann", "ann"},
		{"  ann  ", "ann"},
		{"\tAnn Lee\n", "Ann Lee"},
		{"<b>ann</b>", "ann"},
		{"&lt;b&gt;ann&lt;/b&gt;", "ann"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;", ""},
		{"  <i> </i> ", ""},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Username(tt.input); got != tt.want {
				t.Errorf("Username(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Morning run", "Morning run"},
		{"  Run & bike ", "Run & bike"},
		{"<script>alert(1)</script>", ""},
		{"&lt;script&gt;alert(1)&lt;/script&gt;Jog", "Jog"},
		{"&lt;em&gt;Tempo&lt;/em&gt; run", "Tempo run"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Description(tt.input); got != tt.want {
				t.Errorf("Description(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
