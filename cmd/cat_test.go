package cmd

import "testing"

func TestIsRemotePath(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/user/hadoop/app/workflow.xml", true},
		{"/", true},
		{"0000012-201203213-oozie-W", false},
		{"", false},
		{"relative/path", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isRemotePath(tt.input); got != tt.want {
				t.Errorf("isRemotePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
