package layout

import (
	"testing"
	"time"

	"github.com/lukaschristensson/TimeLinePlot/pkg/errors"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sample() []entry.Entry {
	return []entry.Entry{
		entry.New(date(1997, 8, 2), "A", "first"),
		entry.New(date(1937, 8, 14), "B", "second"),
		entry.New(date(2001, 2, 28), "C", "third"),
	}
}

func TestDefaultRange(t *testing.T) {
	r, err := DefaultRange(sample())
	if err != nil {
		t.Fatalf("DefaultRange() error: %v", err)
	}
	if want := date(1935, 8, 1); !r.FarLeft.Equal(want) {
		t.Errorf("FarLeft = %v, want %v", r.FarLeft, want)
	}
	if want := date(2003, 2, 1); !r.FarRight.Equal(want) {
		t.Errorf("FarRight = %v, want %v", r.FarRight, want)
	}
}

func TestDefaultRangeLeapDay(t *testing.T) {
	r, err := DefaultRange([]entry.Entry{entry.New(date(2020, 2, 29), "leap", "")})
	if err != nil {
		t.Fatalf("DefaultRange() error: %v", err)
	}
	if want := date(2018, 2, 1); !r.FarLeft.Equal(want) {
		t.Errorf("FarLeft = %v, want %v", r.FarLeft, want)
	}
	if want := date(2022, 2, 1); !r.FarRight.Equal(want) {
		t.Errorf("FarRight = %v, want %v", r.FarRight, want)
	}
}

func TestDefaultRangeEmpty(t *testing.T) {
	_, err := DefaultRange(nil)
	if !errors.Is(err, errors.ErrCodeEmptyDataset) {
		t.Errorf("DefaultRange(nil) error = %v, want EMPTY_DATASET", err)
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		b    time.Time
		want int
	}{
		{"same instant", base, 0},
		{"later same day", base.Add(11 * time.Hour), 0},
		{"one day", base.Add(24 * time.Hour), 1},
		{"just short of two days", base.Add(48*time.Hour - time.Nanosecond), 1},
		{"one hour before", base.Add(-time.Hour), -1},
		{"exactly one day before", base.Add(-24 * time.Hour), -1},
		{"across a leap year", base.AddDate(1, 0, 0), 366},
		{"centuries", base.AddDate(400, 0, 0), 146097},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(base, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       DateRange
		wantErr bool
	}{
		{"one day", DateRange{date(2000, 1, 1), date(2000, 1, 2)}, false},
		{"equal bounds", DateRange{date(2000, 1, 1), date(2000, 1, 1)}, true},
		{"less than a day", DateRange{date(2000, 1, 1), date(2000, 1, 1).Add(23 * time.Hour)}, true},
		{"inverted", DateRange{date(2001, 1, 1), date(2000, 1, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeDegenerateRange) {
				t.Errorf("Validate() code = %s, want DEGENERATE_RANGE", errors.GetCode(err))
			}
		})
	}
}

func TestScale(t *testing.T) {
	r := DateRange{date(2000, 1, 1), date(2000, 1, 11)}
	s := NewScale(r, 1130)

	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"far left", r.FarLeft, 30},
		{"midpoint", date(2000, 1, 6), 530},
		{"far right", r.FarRight, 1030},
		{"partial day rounds down", date(2000, 1, 2).Add(23 * time.Hour), 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.X(tt.t); got != tt.want {
				t.Errorf("X() = %v, want %v", got, tt.want)
			}
		})
	}
	if s.Right() != 1030 {
		t.Errorf("Right() = %v, want 1030", s.Right())
	}
}

func TestNumOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		occupied []float64
		newX     float64
		want     int
	}{
		{"only itself", []float64{200}, 200, 0},
		{"far neighbor", []float64{500, 200}, 200, 0},
		{"touching edge", []float64{300, 200}, 200, 1},
		{"identical position", []float64{200, 200}, 200, 1},
		{"chain of two", []float64{300, 250, 200}, 200, 2},
		{"first match wins", []float64{500, 250, 200}, 200, 1},
		{"chain follows collection order", []float64{300, 250, 390, 200}, 200, 2},
		{"same set in another order", []float64{250, 300, 390, 200}, 200, 3},
		{"pivot absent", []float64{250}, 200, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]float64(nil), tt.occupied...)
			if got := NumOverlaps(tt.occupied, tt.newX, CardWidth); got != tt.want {
				t.Errorf("NumOverlaps(%v, %v) = %d, want %d", tt.occupied, tt.newX, got, tt.want)
			}
			for i := range before {
				if before[i] != tt.occupied[i] {
					t.Fatalf("NumOverlaps modified its input: %v", tt.occupied)
				}
			}
		})
	}
}

func TestNumOverlapsLongChain(t *testing.T) {
	// Positions placed right to left, 10px apart: every card overlaps every
	// later one, and the chain visits all of them.
	var occupied []float64
	for i := 999; i >= 0; i-- {
		occupied = append(occupied, float64(i*10))
	}
	if got := NumOverlaps(occupied, 0, CardWidth); got != 999 {
		t.Errorf("NumOverlaps() = %d, want 999", got)
	}
}

func TestBuild(t *testing.T) {
	l, err := Build(sample(), 3000, 500)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if l.AxisY != 400 {
		t.Errorf("AxisY = %v, want 400", l.AxisY)
	}
	if l.Axis.From.X != 30 || l.Axis.To.X != 2910 {
		t.Errorf("Axis = %+v, want 30..2910", l.Axis)
	}
	if len(l.Placements) != 3 {
		t.Fatalf("Placements = %d, want 3", len(l.Placements))
	}

	titles := []string{l.Placements[0].Entry.Title, l.Placements[1].Entry.Title, l.Placements[2].Entry.Title}
	if titles[0] != "C" || titles[1] != "A" || titles[2] != "B" {
		t.Errorf("draw order = %v, want [C A B]", titles)
	}

	xC, xA, xB := l.Placements[0].X, l.Placements[1].X, l.Placements[2].X
	if !(xB < xA && xA < xC) {
		t.Errorf("x order: B=%v A=%v C=%v, want B < A < C", xB, xA, xC)
	}
	for _, p := range l.Placements {
		if p.Tier != 0 {
			t.Errorf("%s tier = %d, want 0", p.Entry.Title, p.Tier)
		}
		if p.Card.Top != 317.5 {
			t.Errorf("%s card top = %v, want 317.5", p.Entry.Title, p.Card.Top)
		}
		if p.X < LeftPadding || p.X > 3000-RightPadding {
			t.Errorf("%s x = %v outside [%v, %v]", p.Entry.Title, p.X, LeftPadding, 3000-RightPadding)
		}
	}
	if l.Tiers() != 1 {
		t.Errorf("Tiers() = %d, want 1", l.Tiers())
	}
}

func TestBuildNarrowStacks(t *testing.T) {
	l, err := Build(sample(), 1000, 500)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	// A lands within a card width of C and is pushed up one tier.
	if got := l.Placements[1]; got.Entry.Title != "A" || got.Tier != 1 {
		t.Errorf("placement 1 = %s tier %d, want A tier 1", got.Entry.Title, got.Tier)
	}
	if got := l.Placements[1].Card.Top; got != 256.5 {
		t.Errorf("A card top = %v, want 256.5", got)
	}
}

func TestBuildIdenticalTimes(t *testing.T) {
	at := date(2010, 5, 5)
	entries := []entry.Entry{
		entry.New(at, "first", ""),
		entry.New(at, "second", ""),
	}
	l, err := Build(entries, 1200, 400)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	p0, p1 := l.Placements[0], l.Placements[1]
	if p0.X != p1.X {
		t.Errorf("x = %v and %v, want equal", p0.X, p1.X)
	}
	if p0.Entry.Title != "second" || p1.Entry.Title != "first" {
		t.Errorf("order = %s, %s, want second, first", p0.Entry.Title, p1.Entry.Title)
	}
	if p1.Tier < 1 || p1.Tier <= p0.Tier {
		t.Errorf("tiers = %d, %d, want the second processed strictly higher", p0.Tier, p1.Tier)
	}
	if p1.Card.Top >= p0.Card.Top {
		t.Errorf("card tops = %v, %v, want the later card further from the axis", p0.Card.Top, p1.Card.Top)
	}
}

func TestBuildSkipsOutsideRange(t *testing.T) {
	entries := []entry.Entry{
		entry.New(date(1995, 1, 1), "in", ""),
		entry.New(date(1980, 1, 1), "before", ""),
		entry.New(date(2030, 1, 1), "after", ""),
		entry.New(date(1995, 1, 2), "neighbor", ""),
	}
	r := DateRange{date(1990, 1, 1), date(2000, 1, 1)}

	l, err := Build(entries, 1000, 400, WithRange(r))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if l.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", l.Skipped)
	}
	if len(l.Placements) != 2 {
		t.Fatalf("Placements = %d, want 2", len(l.Placements))
	}
	if l.Placements[0].Tier != 0 || l.Placements[1].Tier != 1 {
		t.Errorf("tiers = %d, %d, want 0, 1", l.Placements[0].Tier, l.Placements[1].Tier)
	}
}

func TestBuildSingleBound(t *testing.T) {
	left := date(1900, 1, 1)
	l, err := Build(sample(), 1000, 400, WithFarLeft(left))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !l.Range.FarLeft.Equal(left) {
		t.Errorf("FarLeft = %v, want %v", l.Range.FarLeft, left)
	}
	if want := date(2003, 2, 1); !l.Range.FarRight.Equal(want) {
		t.Errorf("FarRight = %v, want derived %v", l.Range.FarRight, want)
	}
}

func TestBuildErrors(t *testing.T) {
	at := date(2000, 1, 1)
	tests := []struct {
		name    string
		entries []entry.Entry
		width   float64
		height  float64
		opts    []Option
		code    errors.Code
	}{
		{"empty", nil, 1000, 400, nil, errors.ErrCodeEmptyDataset},
		{"too narrow", sample(), 130, 400, nil, errors.ErrCodeInvalidDimensions},
		{"no height", sample(), 1000, 0, nil, errors.ErrCodeInvalidDimensions},
		{"equal bounds", sample(), 1000, 400, []Option{WithRange(DateRange{at, at})}, errors.ErrCodeDegenerateRange},
		{"inverted", sample(), 1000, 400, []Option{WithRange(DateRange{at.AddDate(1, 0, 0), at})}, errors.ErrCodeDegenerateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.entries, tt.width, tt.height, tt.opts...)
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCardGeometry(t *testing.T) {
	c := Card{Left: 100, Top: 200}

	outline := c.Outline()
	want := [][2]float64{{100, 200}, {190, 200}, {200, 210}, {200, 255}, {100, 255}}
	for i, p := range outline {
		if p.X != want[i][0] || p.Y != want[i][1] {
			t.Errorf("Outline()[%d] = %+v, want %v", i, p, want[i])
		}
	}

	frame := c.Frame()
	if len(frame) != 4 {
		t.Fatalf("Frame() = %d segments, want 4", len(frame))
	}
	if f := frame[1]; f.From.X != 190 || f.To.Y != 210 {
		t.Errorf("notch = %+v", f)
	}

	if f := c.Fold(); f.From.X != 186 || f.From.Y != 204 || f.To.X != 196 || f.To.Y != 214 {
		t.Errorf("Fold() = %+v", f)
	}
	if r := c.Rule(); r.From.X != 108 || r.To.X != 184 || r.From.Y != 220 {
		t.Errorf("Rule() = %+v", r)
	}
	if a := c.TitleAnchor(); a.X != 146 || a.Y != 220 {
		t.Errorf("TitleAnchor() = %+v", a)
	}
	if a := c.MessageAnchor(); a.X != 106 || a.Y != 224 {
		t.Errorf("MessageAnchor() = %+v", a)
	}
}

func TestMonotonicX(t *testing.T) {
	r := DateRange{date(1900, 1, 1), date(2100, 1, 1)}
	s := NewScale(r, 2000)
	prev := s.X(r.FarLeft)
	for d := r.FarLeft; !d.After(r.FarRight); d = d.AddDate(0, 3, 7) {
		x := s.X(d)
		if x < prev {
			t.Fatalf("X(%v) = %v < previous %v", d, x, prev)
		}
		if x < LeftPadding || x > 2000-RightPadding {
			t.Fatalf("X(%v) = %v outside the axis", d, x)
		}
		prev = x
	}
}
