package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkBabyBoom         BookmarkType = "baby_boom"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
	BookmarkRecovery         BookmarkType = "population_recovery"
	BookmarkDroughtDieOff    BookmarkType = "drought_die_off"
	BookmarkStablePopulation BookmarkType = "stable_population"
	BookmarkExtinction       BookmarkType = "extinction"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentMin          int // Minimum population since the last recovery
	recentPeak         int // Peak population since the last crash
	stableWindowsCount int // Consecutive windows with low population variance
	extinct            bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable population detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		recentMin:   -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(WindowStats) *Bookmark{
			bd.checkBabyBoom,
			bd.checkCrash,
			bd.checkRecovery,
			bd.checkDroughtDieOff,
			bd.checkStable,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if stats.Population < bd.recentMin || bd.recentMin < 0 {
		bd.recentMin = stats.Population
	}
	if stats.Population > bd.recentPeak {
		bd.recentPeak = stats.Population
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// recentPopulations returns the last n window populations, oldest first,
// or nil if fewer than n windows have been seen.
func (bd *BookmarkDetector) recentPopulations(n int) []float64 {
	if len(bd.getHistory()) < n {
		return nil
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = float64(bd.history[idx].Population)
	}
	return out
}

func (bd *BookmarkDetector) checkBabyBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Births
	}
	avg := float64(total) / float64(len(history))

	if stats.Births >= 3 && float64(stats.Births) > avg*2 {
		return &Bookmark{
			Type:        BookmarkBabyBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d births is %.1fx the window average (%.1f)", stats.Births, float64(stats.Births)/max(avg, 1e-9), avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > 0.30 && stats.Population < bd.recentPeak-5 {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkRecovery(stats WindowStats) *Bookmark {
	if bd.recentMin <= 0 || bd.recentMin > 3 {
		return nil
	}

	if stats.Population >= bd.recentMin*3 && stats.Population >= 6 {
		oldMin := bd.recentMin
		bd.recentMin = stats.Population

		return &Bookmark{
			Type:        BookmarkRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population recovered from %d to %d", oldMin, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkDroughtDieOff(stats WindowStats) *Bookmark {
	if stats.DeathsDehydration >= 3 && stats.DeathsDehydration*2 > stats.Deaths {
		return &Bookmark{
			Type:        BookmarkDroughtDieOff,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d of %d deaths from dehydration", stats.DeathsDehydration, stats.Deaths),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStable(stats WindowStats) *Bookmark {
	if stats.Population < 10 {
		bd.stableWindowsCount = 0
		return nil
	}

	recent := bd.recentPopulations(4)
	if recent == nil {
		return nil
	}
	d := Summarize(recent)

	// CV < 0.2
	if d.Mean > 0 && d.Std/d.Mean < 0.2 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 {
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable population of %d over 5+ windows", stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.Population > 0 {
		bd.extinct = false
		return nil
	}
	if bd.extinct {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: "No living agents remain",
	}
}
