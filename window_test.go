package axiom

import "testing"

func TestNewWindowDefaults(t *testing.T) {
	w := NewWindow("firefox", "Firefox", "Mozilla Firefox")
	if w.Opacity != 1.0 {
		t.Errorf("Opacity = %f, want 1.0", w.Opacity)
	}
	if w.Tiled || w.Maximized || w.Fullscreen {
		t.Error("expected a freshly created window to start untiled and unmaximized")
	}
	if w.AppID != "firefox" || w.Class != "Firefox" || w.Title != "Mozilla Firefox" {
		t.Errorf("identity fields not set as given: %+v", w)
	}
}

func TestWindowSaveGeometry(t *testing.T) {
	w := NewWindow("a", "A", "a")
	w.Geometry = Rect{X: 10, Y: 20, W: 300, H: 200}
	w.SaveGeometry()
	if w.SavedGeometry != w.Geometry {
		t.Errorf("SavedGeometry = %+v, want %+v", w.SavedGeometry, w.Geometry)
	}

	w.Geometry = Rect{W: 1920, H: 1080}
	if w.SavedGeometry == w.Geometry {
		t.Error("expected SavedGeometry to hold the stashed value, not track further Geometry changes")
	}
}
