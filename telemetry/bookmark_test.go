package telemetry

import "testing"

func countBookmarks(bookmarks []Bookmark, typ BookmarkType) int {
	n := 0
	for _, bm := range bookmarks {
		if bm.Type == typ {
			n++
		}
	}
	return n
}

func TestBookmarkDetector_BabyBoom(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: 20, Births: 1})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Population: 24, Births: 5})
	if countBookmarks(bookmarks, BookmarkBabyBoom) != 1 {
		t.Errorf("bookmarks = %v, want baby_boom", bookmarks)
	}
}

func TestBookmarkDetector_BabyBoomNeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{Population: 20})

	bookmarks := bd.Check(WindowStats{WindowEndTick: 600, Population: 30, Births: 10})
	if countBookmarks(bookmarks, BookmarkBabyBoom) != 0 {
		t.Errorf("bookmarks = %v, want no baby_boom with one window of history", bookmarks)
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: 100})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Population: 50})
	if countBookmarks(bookmarks, BookmarkPopulationCrash) != 1 {
		t.Errorf("bookmarks = %v, want population_crash", bookmarks)
	}

	// The peak resets, so the same level does not fire again.
	bookmarks = bd.Check(WindowStats{WindowEndTick: 3600, Population: 50})
	if countBookmarks(bookmarks, BookmarkPopulationCrash) != 0 {
		t.Errorf("bookmarks = %v, want no repeated crash", bookmarks)
	}
}

func TestBookmarkDetector_Recovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 0, Population: 2})
	bd.Check(WindowStats{WindowEndTick: 600, Population: 2})

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1200, Population: 7})
	if countBookmarks(bookmarks, BookmarkRecovery) != 1 {
		t.Errorf("bookmarks = %v, want population_recovery", bookmarks)
	}
}

func TestBookmarkDetector_DroughtDieOff(t *testing.T) {
	tests := []struct {
		name        string
		deaths      int
		dehydration int
		want        int
	}{
		{"mostly dehydration", 4, 3, 1},
		{"too few", 2, 2, 0},
		{"not the majority", 6, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			bd.Check(WindowStats{Population: 20})

			bookmarks := bd.Check(WindowStats{
				WindowEndTick:     600,
				Population:        16,
				Deaths:            tt.deaths,
				DeathsDehydration: tt.dehydration,
			})
			if got := countBookmarks(bookmarks, BookmarkDroughtDieOff); got != tt.want {
				t.Errorf("drought_die_off count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBookmarkDetector_StablePopulation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	firedAt := -1
	fired := 0
	for i := 0; i < 15; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: 20 + i%2})
		if n := countBookmarks(bookmarks, BookmarkStablePopulation); n > 0 {
			fired += n
			if firedAt < 0 {
				firedAt = i
			}
		}
	}

	if fired != 1 {
		t.Errorf("stable_population fired %d times, want 1", fired)
	}
	if firedAt != 8 {
		t.Errorf("stable_population fired at window %d, want 8", firedAt)
	}
}

func TestBookmarkDetector_StableNeedsMinimumPopulation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 15; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: 5})
		if countBookmarks(bookmarks, BookmarkStablePopulation) != 0 {
			t.Fatalf("window %d: stable_population fired for population 5", i)
		}
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10)

	pops := []int{4, 0, 0, 3, 0}
	want := []int{0, 1, 0, 0, 1}
	for i, pop := range pops {
		bookmarks := bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: pop})
		if got := countBookmarks(bookmarks, BookmarkExtinction); got != want[i] {
			t.Errorf("window %d: extinction count = %d, want %d", i, got, want[i])
		}
	}
}

func TestNewBookmarkDetector_MinimumHistory(t *testing.T) {
	bd := NewBookmarkDetector(1)
	if bd.historySize != 5 {
		t.Errorf("historySize = %d, want 5", bd.historySize)
	}
}
