package util

import "testing"

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "report.pdf", "pdf"},
		{"last of many", "archive.tar.gz", "gz"},
		{"none", "Makefile", ""},
		{"trailing dot", "notes.", ""},
		{"windows path", `C:\docs\plan.DOCX`, "DOCX"},
		{"dir with dot", "dir.v2/README", ""},
		{"quote", `bad.p"df`, ""},
		{"too long", "x.abcdefghijklmnopq", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Extension(tt.in); got != tt.want {
				t.Fatalf("Extension(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
