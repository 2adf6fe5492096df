package capability

import "testing"

const (
	desktopUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/126.0 Safari/537.36"
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"
	androidUA = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Mobile Safari/537.36"
)

func TestClassifyAnyMode(t *testing.T) {
	c := New("any", 768)

	cases := []struct {
		name    string
		signals Signals
		want    Capability
	}{
		{"desktop wide", Signals{UserAgent: desktopUA, ViewportWidth: 1440}, FullFidelity},
		{"desktop no width hint", Signals{UserAgent: desktopUA}, FullFidelity},
		{"mobile ua alone", Signals{UserAgent: iphoneUA, ViewportWidth: 1024}, Constrained},
		{"small screen alone", Signals{UserAgent: desktopUA, ViewportWidth: 600}, Constrained},
		{"both signals", Signals{UserAgent: androidUA, ViewportWidth: 390}, Constrained},
		{"width at threshold", Signals{UserAgent: desktopUA, ViewportWidth: 768}, Constrained},
		{"width just above threshold", Signals{UserAgent: desktopUA, ViewportWidth: 769}, FullFidelity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(tc.signals); got != tc.want {
				t.Fatalf("Classify(%+v) = %s, want %s", tc.signals, got, tc.want)
			}
		})
	}
}

func TestClassifyAllMode(t *testing.T) {
	c := New("all", 768)

	cases := []struct {
		name    string
		signals Signals
		want    Capability
	}{
		{"mobile ua alone stays full", Signals{UserAgent: iphoneUA, ViewportWidth: 1024}, FullFidelity},
		{"small screen alone stays full", Signals{UserAgent: desktopUA, ViewportWidth: 500}, FullFidelity},
		{"both signals constrained", Signals{UserAgent: androidUA, ViewportWidth: 390}, Constrained},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify(tc.signals); got != tc.want {
				t.Fatalf("Classify(%+v) = %s, want %s", tc.signals, got, tc.want)
			}
		})
	}
}

func TestClassifyZeroWidthIsNotSmallScreen(t *testing.T) {
	c := New("any", 768)
	if got := c.Classify(Signals{UserAgent: desktopUA, ViewportWidth: 0}); got != FullFidelity {
		t.Fatalf("zero width should not count as a constrained signal, got %s", got)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New("bogus", -1)
	if c.Mode != ModeAny {
		t.Fatalf("unknown mode should fall back to any, got %s", c.Mode)
	}
	if c.MaxWidth != 768 {
		t.Fatalf("non-positive width should fall back to default, got %d", c.MaxWidth)
	}

	c = New("ALL", 1024)
	if c.Mode != ModeAll {
		t.Fatalf("mode should normalize case, got %s", c.Mode)
	}
	if c.MaxWidth != 1024 {
		t.Fatalf("MaxWidth = %d, want 1024", c.MaxWidth)
	}
}

func TestMobileUserAgentMatching(t *testing.T) {
	c := New("any", 768)
	mobile := []string{
		iphoneUA,
		androidUA,
		"Mozilla/5.0 (compatible; MSIE 10.0; Windows Phone 8.0; IEMobile/10.0)",
		"Opera/9.80 (J2ME/MIDP; Opera Mini/9.80)",
	}
	for _, ua := range mobile {
		if got := c.Classify(Signals{UserAgent: ua}); got != Constrained {
			t.Fatalf("user agent %q should classify constrained, got %s", ua, got)
		}
	}
}
