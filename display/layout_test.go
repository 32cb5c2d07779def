package display

import (
	"image"
	"math"
	"testing"
)

func dsParams(w, h int) Params {
	return Params{
		OutputWidth:  w,
		OutputHeight: h,
		SourceWidth:  256,
		SourceHeight: 384,
	}
}

func TestRecomputeStretchScenarios(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		landscape bool
		main      image.Rectangle
		touch     image.Rectangle
	}{
		{
			name:      "Landscape 800x480",
			w:         800,
			h:         480,
			landscape: true,
			main:      image.Rect(0, 0, 400, 480),
			touch:     image.Rect(400, 0, 800, 480),
		},
		{
			name:      "Portrait 480x800",
			w:         480,
			h:         800,
			landscape: false,
			main:      image.Rect(0, 0, 480, 400),
			touch:     image.Rect(0, 400, 480, 800),
		},
		{
			name:      "Square is portrait",
			w:         600,
			h:         600,
			landscape: false,
			main:      image.Rect(0, 0, 600, 300),
			touch:     image.Rect(0, 300, 600, 600),
		},
		{
			name:      "Odd width",
			w:         801,
			h:         480,
			landscape: true,
			main:      image.Rect(0, 0, 400, 480),
			touch:     image.Rect(400, 0, 801, 480),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Recompute(dsParams(tt.w, tt.h))
			if l.Landscape != tt.landscape {
				t.Errorf("Landscape = %v, want %v", l.Landscape, tt.landscape)
			}
			if l.MainRegion != tt.main {
				t.Errorf("MainRegion = %v, want %v", l.MainRegion, tt.main)
			}
			if l.TouchRegion != tt.touch {
				t.Errorf("TouchRegion = %v, want %v", l.TouchRegion, tt.touch)
			}
			if !l.Ready() {
				t.Error("expected layout to be ready")
			}
		})
	}
}

func TestRecomputeSourceRects(t *testing.T) {
	l := Recompute(dsParams(800, 480))
	if l.SourceMain != image.Rect(0, 0, 256, 192) {
		t.Errorf("SourceMain = %v", l.SourceMain)
	}
	if l.SourceTouch != image.Rect(0, 192, 256, 384) {
		t.Errorf("SourceTouch = %v", l.SourceTouch)
	}

	// Odd source height: both halves keep the same height
	p := dsParams(800, 480)
	p.SourceHeight = 385
	l = Recompute(p)
	if l.SourceMain.Dy() != 192 || l.SourceTouch.Dy() != 192 {
		t.Errorf("panel heights = %d/%d, want 192/192", l.SourceMain.Dy(), l.SourceTouch.Dy())
	}
}

func TestRecomputeStretchPartitions(t *testing.T) {
	sizes := [][2]int{
		{2, 2}, {3, 7}, {7, 3}, {640, 480}, {480, 640}, {1920, 1080},
		{1080, 1920}, {1001, 999}, {999, 1001}, {2560, 1600}, {321, 241},
	}

	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		l := Recompute(dsParams(w, h))

		if !l.MainRegion.Intersect(l.TouchRegion).Empty() {
			t.Errorf("%dx%d: regions overlap: %v %v", w, h, l.MainRegion, l.TouchRegion)
		}
		if got := area(l.MainRegion) + area(l.TouchRegion); got != w*h {
			t.Errorf("%dx%d: regions cover %d pixels, want %d", w, h, got, w*h)
		}
		if l.MainRegion.Union(l.TouchRegion) != l.Output() {
			t.Errorf("%dx%d: union %v != output", w, h, l.MainRegion.Union(l.TouchRegion))
		}

		if l.Landscape {
			if l.MainRegion.Max.X != l.TouchRegion.Min.X || l.MainRegion.Dy() != h || l.TouchRegion.Dy() != h {
				t.Errorf("%dx%d: expected vertical split, got %v %v", w, h, l.MainRegion, l.TouchRegion)
			}
			if diff := l.TouchRegion.Dx() - l.MainRegion.Dx(); diff < 0 || diff > 1 {
				t.Errorf("%dx%d: halves differ by %d", w, h, diff)
			}
		} else {
			if l.MainRegion.Max.Y != l.TouchRegion.Min.Y || l.MainRegion.Dx() != w || l.TouchRegion.Dx() != w {
				t.Errorf("%dx%d: expected horizontal split, got %v %v", w, h, l.MainRegion, l.TouchRegion)
			}
			if diff := l.TouchRegion.Dy() - l.MainRegion.Dy(); diff < 0 || diff > 1 {
				t.Errorf("%dx%d: halves differ by %d", w, h, diff)
			}
		}
	}
}

func TestRecomputeMaintainScenarios(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		main  image.Rectangle
		touch image.Rectangle
	}{
		{
			// 512x192 arrangement into 800x480: fit width, 300 high, 90px bands
			name:  "Landscape 800x480",
			w:     800,
			h:     480,
			main:  image.Rect(0, 90, 400, 390),
			touch: image.Rect(400, 90, 800, 390),
		},
		{
			// 256x384 arrangement into 480x800: fit width, 720 high, 40px bands
			name:  "Portrait 480x800",
			w:     480,
			h:     800,
			main:  image.Rect(0, 40, 480, 400),
			touch: image.Rect(0, 400, 480, 760),
		},
		{
			// 256x384 arrangement into 1000x1200: fit height, 800 wide, 100px bands
			name:  "Portrait wide 1000x1200",
			w:     1000,
			h:     1200,
			main:  image.Rect(100, 0, 900, 600),
			touch: image.Rect(100, 600, 900, 1200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := dsParams(tt.w, tt.h)
			p.Aspect = AspectMaintain
			l := Recompute(p)
			if l.MainRegion != tt.main {
				t.Errorf("MainRegion = %v, want %v", l.MainRegion, tt.main)
			}
			if l.TouchRegion != tt.touch {
				t.Errorf("TouchRegion = %v, want %v", l.TouchRegion, tt.touch)
			}
		})
	}
}

func TestRecomputeMaintainCenteredAndProportional(t *testing.T) {
	sizes := [][2]int{
		{800, 480}, {480, 800}, {1920, 1080}, {1080, 1920}, {1024, 768},
		{768, 1024}, {333, 777}, {777, 333}, {2000, 300}, {300, 2000},
	}

	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		p := dsParams(w, h)
		p.Aspect = AspectMaintain
		l := Recompute(p)

		if !l.MainRegion.Intersect(l.TouchRegion).Empty() {
			t.Errorf("%dx%d: regions overlap", w, h)
		}
		u := l.MainRegion.Union(l.TouchRegion)
		if !u.In(l.Output()) {
			t.Errorf("%dx%d: union %v outside output", w, h, u)
		}

		left, right := u.Min.X, w-u.Max.X
		top, bottom := u.Min.Y, h-u.Max.Y
		if abs(left-right) > 1 || abs(top-bottom) > 1 {
			t.Errorf("%dx%d: not centered: l=%d r=%d t=%d b=%d", w, h, left, right, top, bottom)
		}
		if left != 0 && top != 0 {
			t.Errorf("%dx%d: fitted region touches no edge: %v", w, h, u)
		}

		arrW, arrH := 256.0, 384.0
		if l.Landscape {
			arrW, arrH = 512.0, 192.0
		}
		// The dimension that was not pinned to the output is within a pixel
		if top == 0 {
			want := float64(u.Dy()) * arrW / arrH
			if math.Abs(float64(u.Dx())-want) > 1 {
				t.Errorf("%dx%d: fitted width %d, want %.1f", w, h, u.Dx(), want)
			}
		} else {
			want := float64(u.Dx()) * arrH / arrW
			if math.Abs(float64(u.Dy())-want) > 1 {
				t.Errorf("%dx%d: fitted height %d, want %.1f", w, h, u.Dy(), want)
			}
		}
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	for _, aspect := range []AspectPolicy{AspectStretch, AspectMaintain} {
		p := dsParams(1366, 768)
		p.Aspect = aspect
		p.LCDSwap = true
		a := Recompute(p)
		b := Recompute(p)
		if a != b {
			t.Errorf("%s: Recompute not idempotent: %+v != %+v", aspect, a, b)
		}
	}
}

func TestRecomputeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"Zero width", dsParams(0, 480)},
		{"Zero height", dsParams(800, 0)},
		{"Negative", dsParams(-10, 480)},
		{"Zero source", Params{OutputWidth: 800, OutputHeight: 480}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Recompute(tt.p)
			if !l.MainRegion.Empty() || !l.TouchRegion.Empty() {
				t.Errorf("expected empty regions, got %v %v", l.MainRegion, l.TouchRegion)
			}
			if l.Ready() {
				t.Error("degenerate layout must not be ready")
			}
		})
	}
}

func TestRecomputeLCDSwap(t *testing.T) {
	p := dsParams(480, 800)
	plain := Recompute(p)
	p.LCDSwap = true
	swapped := Recompute(p)

	if swapped.MainRegion != image.Rect(0, 400, 480, 800) {
		t.Errorf("swapped MainRegion = %v", swapped.MainRegion)
	}
	if swapped.TouchRegion != image.Rect(0, 0, 480, 400) {
		t.Errorf("swapped TouchRegion = %v", swapped.TouchRegion)
	}
	if swapped.MainRegion != plain.TouchRegion || swapped.TouchRegion != plain.MainRegion {
		t.Error("swap must exchange the destination regions")
	}
	if swapped.SourceMain != plain.SourceMain || swapped.SourceTouch != plain.SourceTouch {
		t.Error("swap must not change the source rects")
	}
}

func TestRecomputeMainOnly(t *testing.T) {
	p := dsParams(800, 480)
	p.ScreenMode = ScreenModeMainOnly
	l := Recompute(p)
	if l.MainRegion != image.Rect(0, 0, 800, 480) {
		t.Errorf("MainRegion = %v, want full output", l.MainRegion)
	}
	if !l.TouchRegion.Empty() {
		t.Errorf("TouchRegion = %v, want empty", l.TouchRegion)
	}

	// 256x192 into 800x480: fit height, 640 wide
	p.Aspect = AspectMaintain
	l = Recompute(p)
	if l.MainRegion != image.Rect(80, 0, 720, 480) {
		t.Errorf("maintain MainRegion = %v", l.MainRegion)
	}
}

func TestRecomputeLowColor(t *testing.T) {
	tests := []struct {
		name   string
		format PixelFormat
		filter bool
		want   bool
	}{
		{"RGB565 no filter", PixelFormatRGB565, false, true},
		{"RGB565 with filter", PixelFormatRGB565, true, false},
		{"RGBA", PixelFormatRGBA8888, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := dsParams(800, 480)
			p.PixelFormat = tt.format
			p.FilterActive = tt.filter
			if got := Recompute(p).LowColor; got != tt.want {
				t.Errorf("LowColor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToTouchPanel(t *testing.T) {
	l := Recompute(dsParams(800, 480))

	center := image.Pt(
		l.TouchRegion.Min.X+l.TouchRegion.Dx()/2,
		l.TouchRegion.Min.Y+l.TouchRegion.Dy()/2,
	)
	if got := l.ToTouchPanel(center); got != image.Pt(128, 96) {
		t.Errorf("center maps to %v, want (128,96)", got)
	}

	if got := l.ToTouchPanel(image.Pt(400, 0)); got != image.Pt(0, 0) {
		t.Errorf("top-left maps to %v", got)
	}
	if got := l.ToTouchPanel(image.Pt(799, 479)); got != image.Pt(255, 191) {
		t.Errorf("bottom-right maps to %v", got)
	}

	// Outside points clamp to the panel
	if got := l.ToTouchPanel(image.Pt(-50, -50)); got != image.Pt(0, 0) {
		t.Errorf("far top-left maps to %v", got)
	}
	if got := l.ToTouchPanel(image.Pt(5000, 5000)); got != image.Pt(255, 191) {
		t.Errorf("far bottom-right maps to %v", got)
	}
}

func TestToTouchPanelCenterRoundTrip(t *testing.T) {
	sizes := [][2]int{{800, 480}, {480, 800}, {1920, 1080}, {1024, 1536}}
	for _, sz := range sizes {
		for _, aspect := range []AspectPolicy{AspectStretch, AspectMaintain} {
			p := dsParams(sz[0], sz[1])
			p.Aspect = aspect
			l := Recompute(p)
			r := l.TouchRegion
			got := l.ToTouchPanel(image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2))
			if abs(got.X-128) > 1 || abs(got.Y-96) > 1 {
				t.Errorf("%dx%d %s: center maps to %v, want (128,96)±1", sz[0], sz[1], aspect, got)
			}
		}
	}
}

func TestToTouchPanelHiddenTouchUsesWholeOutput(t *testing.T) {
	p := dsParams(800, 480)
	p.ScreenMode = ScreenModeMainOnly
	l := Recompute(p)

	if got := l.ToTouchPanel(image.Pt(400, 240)); got != image.Pt(128, 96) {
		t.Errorf("output center maps to %v, want (128,96)", got)
	}
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
