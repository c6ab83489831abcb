package pager

import "testing"

func items(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPager_TwentyThreeItems(t *testing.T) {
	p := New(23)
	if p.TotalPages() != 2 {
		t.Fatalf("expected 2 pages, got %d", p.TotalPages())
	}

	if got := Slice(items(23), p); len(got) != 15 || got[0] != 0 {
		t.Errorf("page 1: unexpected slice %v", got)
	}

	if !p.Goto(2) {
		t.Fatal("expected Goto(2) to move")
	}
	got := Slice(items(23), p)
	if len(got) != 8 || got[0] != 15 || got[7] != 22 {
		t.Errorf("page 2: unexpected slice %v", got)
	}
}

func TestPager_OutOfRangeIsNoop(t *testing.T) {
	p := New(40)
	p.Goto(2)

	for _, k := range []int{-1, 0, 4, 100} {
		before := p
		if p.Goto(k) {
			t.Errorf("Goto(%d) should not move", k)
		}
		if p != before {
			t.Errorf("Goto(%d) changed state: %+v -> %+v", k, before, p)
		}
	}

	p.Goto(3)
	if p.Next() || p.Page() != 3 {
		t.Errorf("Next past the end should be a no-op, page=%d", p.Page())
	}
	p.Goto(1)
	if p.Prev() || p.Page() != 1 {
		t.Errorf("Prev before the start should be a no-op, page=%d", p.Page())
	}
}

func TestPager_PageLengths(t *testing.T) {
	for _, n := range []int{1, 14, 15, 16, 30, 31, 100} {
		p := New(n)
		for k := 1; k <= p.TotalPages(); k++ {
			p.Goto(k)
			want := min(PageSize, n-(k-1)*PageSize)
			if got := len(Slice(items(n), p)); got != want {
				t.Errorf("n=%d page=%d: expected %d items, got %d", n, k, want, got)
			}
		}
	}
}

func TestPager_ResizeClamps(t *testing.T) {
	p := New(100)
	p.Goto(7)

	p.Resize(20)
	if p.Page() != 2 {
		t.Errorf("expected clamp to last page 2, got %d", p.Page())
	}

	p.Resize(0)
	if p.Page() != 1 || p.TotalPages() != 0 {
		t.Errorf("expected page 1 of 0, got %d of %d", p.Page(), p.TotalPages())
	}
	if got := Slice([]int{}, p); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestPager_Info(t *testing.T) {
	p := New(23)
	p.Next()
	info := p.Info()
	if info.Page != 2 || info.PageSize != 15 || info.Total != 23 || info.TotalPages != 2 {
		t.Errorf("unexpected info %+v", info)
	}
	if p.HasNext() || !p.HasPrev() {
		t.Errorf("unexpected HasNext/HasPrev on last page")
	}
}
