package util

import "testing"

func TestHashOwnerKey(t *testing.T) {
	id := "+15551234567"
	got := HashOwnerKey(id)
	if got != HashOwnerKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestSanitizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+1 (555) 123-4567", "+15551234567"},
		{"whatsapp:15551234567", "15551234567"},
		{"  +44 20 7946 0958 ", "+442079460958"},
	}
	for _, tc := range cases {
		if got := SanitizePhone(tc.in); got != tc.want {
			t.Fatalf("SanitizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
