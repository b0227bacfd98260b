package resources

import (
	"bytes"
	"testing"
)

func TestIconsAreEmbedded(t *testing.T) {
	for _, name := range []string{IconLogo, IconTrayActive, IconTrayPaused, IconTrayIdle, IconCheck} {
		resource, err := Icon(name)
		if err != nil {
			t.Fatalf("icon %s: %v", name, err)
		}
		if !bytes.Contains(resource.Content(), []byte("<svg")) {
			t.Fatalf("icon %s is not an svg", name)
		}
		if again := MustIcon(name); again != resource {
			t.Fatalf("icon %s not cached", name)
		}
	}
}

func TestMissingIcon(t *testing.T) {
	if _, err := Icon("missing.svg"); err == nil {
		t.Fatalf("expected error for missing icon")
	}
}
