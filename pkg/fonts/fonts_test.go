package fonts

import (
	"strings"
	"testing"
)

func TestFaceCSS(t *testing.T) {
	css := FaceCSS()
	if n := strings.Count(css, "@font-face"); n != 2 {
		t.Errorf("got %d @font-face rules, want 2", n)
	}
	for _, want := range []string{"font-weight:normal", "font-weight:bold", "data:font/ttf;base64,", "'Go'"} {
		if !strings.Contains(css, want) {
			t.Errorf("FaceCSS() missing %q", want)
		}
	}
	if FaceCSS() != css {
		t.Error("FaceCSS() is not stable")
	}
}

func TestFaceData(t *testing.T) {
	if len(RegularTTF()) == 0 || len(BoldTTF()) == 0 {
		t.Fatal("embedded face data is empty")
	}
}
