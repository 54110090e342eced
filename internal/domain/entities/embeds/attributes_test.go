package embeds

import "testing"

func TestAttributesInsertionOrder(t *testing.T) {
	a := NewAttributes()
	a.Set("frameborder", "0")
	a.Set("allow", "autoplay")
	a.Set("frameborder", "1")

	pairs := a.Pairs()
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Key != "frameborder" || pairs[0].Value != "1" {
		t.Errorf("update must keep position: %+v", pairs[0])
	}
	if pairs[1].Key != "allow" {
		t.Errorf("unexpected second pair: %+v", pairs[1])
	}
}

func TestAttributesNilSafety(t *testing.T) {
	var a *Attributes
	if a.Len() != 0 {
		t.Error("nil attributes must report zero length")
	}
	if _, ok := a.Get("src"); ok {
		t.Error("nil attributes must not report values")
	}

	c := a.Clone()
	c.Set("src", "https://example.com")
	if c.Len() != 1 {
		t.Error("clone of nil must be usable")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := NewAttributes(Attribute{Key: "width", Value: "640"})
	c := a.Clone()
	c.Set("width", "800")

	if v, _ := a.Get("width"); v != "640" {
		t.Errorf("clone mutation leaked into the original: %q", v)
	}
}

func TestResolvedDimensions(t *testing.T) {
	svc := &Service{DefaultWidth: 640, DefaultHeight: 360}
	if svc.ResolvedWidth() != 640 || svc.ResolvedHeight() != 360 {
		t.Error("zero dimensions must fall back to defaults")
	}

	svc.Width = 800
	svc.Height = 450
	if svc.ResolvedWidth() != 800 || svc.ResolvedHeight() != 450 {
		t.Error("explicit dimensions must win")
	}
}
