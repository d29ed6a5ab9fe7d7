package cli

import (
	"testing"
)

func TestParseRect(t *testing.T) {
	r, err := parseRect("10,20,300,400")
	if err != nil {
		t.Fatalf("parseRect failed: %v", err)
	}
	if r.X != 10 || r.Y != 20 || r.W != 300 || r.H != 400 {
		t.Errorf("rect = %+v", r)
	}

	// Fractional coordinates from display-space mapping
	r, err = parseRect("10.5, 20.25, 30, 40")
	if err != nil {
		t.Fatalf("parseRect with spaces failed: %v", err)
	}
	if r.X != 10.5 || r.Y != 20.25 {
		t.Errorf("rect = %+v", r)
	}
}

func TestParseRectInvalid(t *testing.T) {
	cases := []string{
		"",
		"1,2,3",
		"1,2,3,4,5",
		"a,b,c,d",
		"0,0,-10,10",
		"0,0,10,0",
	}
	for _, s := range cases {
		if _, err := parseRect(s); err == nil {
			t.Errorf("parseRect(%q) should fail", s)
		}
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("500x250")
	if err != nil {
		t.Fatalf("parseSize failed: %v", err)
	}
	if w != 500 || h != 250 {
		t.Errorf("size = %vx%v", w, h)
	}

	for _, s := range []string{"", "500", "x250", "500x", "0x100", "axb"} {
		if _, _, err := parseSize(s); err == nil {
			t.Errorf("parseSize(%q) should fail", s)
		}
	}
}
