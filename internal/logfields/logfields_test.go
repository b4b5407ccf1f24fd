package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Phase", KeyPhase, "tree", Phase("tree")},
		{"Path", KeyPath, "/docs/intro", Path("/docs/intro")},
		{"File", KeyFile, "intro.md", File("intro.md")},
		{"Dir", KeyDir, "guide", Dir("guide")},
		{"DocID", KeyDocID, "guide/intro.md", DocID("guide/intro.md")},
		{"Version", KeyVersion, "v2", Version("v2")},
		{"Locale", KeyLocale, "en", Locale("en")},
		{"Href", KeyHref, "/docs/x", Href("/docs/x")},
		{"Target", KeyTarget, "api", Target("api")},
		{"Rule", KeyRule, "cross_version", Rule("cross_version")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if got := c.attr.Value.String(); got != c.attrVal {
			t.Errorf("%s value = %q, want %q", c.name, got, c.attrVal)
		}
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	if a := Count(4); a.Key != KeyCount || a.Value.Int64() != 4 {
		t.Errorf("Count attr = %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Errorf("DurationMS attr = %v", a)
	}
	if a := Error(nil); a.Value.String() != "" {
		t.Errorf("Error(nil) = %q, want empty", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Errorf("Error(boom) = %q", a.Value.String())
	}
}
