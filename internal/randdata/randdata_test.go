package randdata

import (
	"strings"
	"testing"
)

func TestUsername(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		name := Username()

		if len(name) != 10 {
			t.Fatalf("expected 10-character username, got %q", name)
		}
		for _, r := range name {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				t.Fatalf("expected only ASCII letters, got %q", name)
			}
		}
		seen[name] = true
	}

	// 100 draws from 52^10 collapsing to one value means a broken generator.
	if len(seen) < 2 {
		t.Error("expected usernames to vary across draws")
	}
}

func TestEmail(t *testing.T) {
	for i := 0; i < 100; i++ {
		email := Email()

		local, domain, ok := strings.Cut(email, "@")
		if !ok {
			t.Fatalf("expected local@domain, got %q", email)
		}
		if local != strings.ToLower(local) {
			t.Errorf("expected lowercase local part, got %q", local)
		}

		switch domain {
		case "example.com", "test.com", "mail.com", "demo.org":
		default:
			t.Errorf("unexpected domain %q", domain)
		}
	}
}
