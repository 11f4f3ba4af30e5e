package marker

import "testing"

func TestIsMarkerFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"foo.pth", true},
		{"a/b/c.pth", true},
		{"a-1.0.data/scripts/a.pth", true},
		{"foo.cfg", false},
		{"foo_nspkg.pth", false},
		{"foo-1.0-py3.8-nspkg.pth", false},
		{"pkg/nspkg.pth", false},
		{"foo.pth.bak", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarkerFilename(tt.name); got != tt.want {
				t.Errorf("IsMarkerFilename(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsBuildScript(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"pkg-1.0/setup.py", true},
		{"pkg-1.0/sub/setup.py", true},
		{"setup.py", false},
		{"pkg-1.0/my_setup.py", false},
		{"pkg-1.0/setup.pyc", false},
	}

	for _, tt := range tests {
		if got := IsBuildScript(tt.name); got != tt.want {
			t.Errorf("IsBuildScript(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInBuildScript(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"data_files=[('', ['foo.pth'])]", true},
		{"# mentions .pth in a comment", true},
		{"from setuptools import setup\nsetup(name='b')\n", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := InBuildScript([]byte(tt.content)); got != tt.want {
			t.Errorf("InBuildScript(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}
