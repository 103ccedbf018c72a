package availability

import "testing"

func mustRange(t *testing.T, s string) TimeRange {
	t.Helper()
	r, err := ParseRange(s)
	if err != nil {
		t.Fatalf("ParseRange(%q): %v", s, err)
	}
	return r
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:05", 545, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"9:00", 0, true},
		{"09-00", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %v", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestClockString(t *testing.T) {
	if got := Clock(545).String(); got != "09:05" {
		t.Errorf("Clock(545).String() = %q, want 09:05", got)
	}
}

func TestBucketsExactMultiple(t *testing.T) {
	r := mustRange(t, "09:00-11:00")
	buckets := r.Buckets(30)
	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d: %v", len(buckets), buckets)
	}
	// Contiguous, no gaps, covering [start, end).
	if buckets[0].Start != r.Start || buckets[len(buckets)-1].End != r.End {
		t.Fatalf("buckets do not cover range: %v", buckets)
	}
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Start != buckets[i-1].End {
			t.Fatalf("gap between bucket %d and %d: %v", i-1, i, buckets)
		}
	}
}

func TestBucketsDropsPartialTrailing(t *testing.T) {
	buckets := mustRange(t, "09:00-09:50").Buckets(30)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d: %v", len(buckets), buckets)
	}
	if buckets[0].String() != "09:00-09:30" {
		t.Fatalf("unexpected bucket %v", buckets[0])
	}
}

func TestBucketsEmptyWhenStartNotBeforeEnd(t *testing.T) {
	if got := mustRange(t, "10:00-10:00").Buckets(30); got != nil {
		t.Fatalf("expected no buckets, got %v", got)
	}
	if got := (TimeRange{Start: 600, End: 540}).Buckets(30); got != nil {
		t.Fatalf("expected no buckets for inverted range, got %v", got)
	}
}

func TestParseRangeList(t *testing.T) {
	ranges, err := ParseRangeList("09:00-12:00, 14:00-17:00")
	if err != nil {
		t.Fatalf("ParseRangeList: %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if FormatRangeList(ranges) != "09:00-12:00,14:00-17:00" {
		t.Fatalf("round trip mismatch: %q", FormatRangeList(ranges))
	}

	if _, err := ParseRangeList("09:00"); err == nil {
		t.Fatal("expected error for range without end")
	}

	ranges, err = ParseRangeList("")
	if err != nil || ranges != nil {
		t.Fatalf("empty input should yield nil, nil; got %v, %v", ranges, err)
	}
}
