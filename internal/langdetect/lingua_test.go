package langdetect

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		code string
	}{
		{"The quick brown fox jumps over the lazy dog near the river bank", "en"},
		{"Le renard brun rapide saute par-dessus le chien paresseux", "fr"},
		{"Der schnelle braune Fuchs springt über den faulen Hund", "de"},
		{"El rápido zorro marrón salta sobre el perro perezoso", "es"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := Detect(tt.text)
			if !ok {
				t.Fatalf("Detect(%q) found nothing", tt.text)
			}
			if got.Code != tt.code {
				t.Errorf("Detect(%q) = %+v, want code %q", tt.text, got, tt.code)
			}
			if got.Name == "" || got.Name[0] < 'A' || got.Name[0] > 'Z' {
				t.Errorf("Name = %q, want a capitalized display name", got.Name)
			}
		})
	}
}

func TestDetectShortText(t *testing.T) {
	for _, text := range []string{"", "   ", "OK", "Go!", "12345 678"} {
		if got, ok := Detect(text); ok {
			t.Errorf("Detect(%q) = %+v, short samples should be undecided", text, got)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("ENGLISH"); got != "English" {
		t.Errorf("displayName = %q", got)
	}
	if got := displayName(""); got != "" {
		t.Errorf("displayName(\"\") = %q", got)
	}
}
