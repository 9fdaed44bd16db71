package resend

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	html, err := Render([]string{"guitar", "<script>"}, 2)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, want := range []string{"2 habit streaks", "under 2 hours", "<li>guitar</li>", "&lt;script&gt;"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered email missing %q:\n%s", want, html)
		}
	}
}

func TestRender_Singular(t *testing.T) {
	html, err := Render([]string{"guitar"}, 1)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(html, "1 habit streak will break in under 1 hour:") {
		t.Errorf("unexpected wording:\n%s", html)
	}
}

func TestSendNudge_MissingSettings(t *testing.T) {
	n := &ResendNotifier{}
	if err := n.SendNudge([]string{"guitar"}, 1); err == nil {
		t.Fatal("expected error without API key and recipient")
	}
}
