package pipeline

import (
	"sort"

	"github.com/backmassage/assetkit/internal/config"
	"github.com/backmassage/assetkit/internal/imaging"
)

// Report accumulates ImageRecords into the run summary.
type Report struct {
	Root        string
	Engine      string
	Available   bool
	Write       bool
	MaxKB       int
	TargetBytes int64
	Interrupted bool

	Records     []ImageRecord
	Counts      [numOutcomes]int
	Written     int
	OverTarget  int // final size still above target, untouched files included
	TotalBefore int64
	TotalAfter  int64
}

// NewReport returns an empty report for cfg's settings. A nil codec marks
// the engine unavailable.
func NewReport(cfg *config.Config, codec imaging.Codec) *Report {
	return &Report{
		Root:        cfg.Images.Root,
		Engine:      string(cfg.Images.Engine),
		Available:   codec != nil,
		Write:       cfg.Images.Write,
		MaxKB:       cfg.Images.MaxKB,
		TargetBytes: cfg.Images.TargetBytes(),
	}
}

// Add folds one record into the totals.
func (r *Report) Add(rec ImageRecord) {
	r.Records = append(r.Records, rec)
	r.Counts[rec.Outcome]++
	if rec.Written {
		r.Written++
	}
	if rec.BytesAfter > r.TargetBytes {
		r.OverTarget++
	}
	r.TotalBefore += rec.BytesBefore
	r.TotalAfter += rec.BytesAfter
}

// Optimized returns the number of optimization candidates.
func (r *Report) Optimized() int { return r.Counts[OutcomeOptimized] }

// Count returns the number of records with outcome o.
func (r *Report) Count(o Outcome) int { return r.Counts[o] }

// Saved returns max(0, TotalBefore-TotalAfter).
func (r *Report) Saved() int64 {
	return max(0, r.TotalBefore-r.TotalAfter)
}

// TopSavings returns up to n records ordered by SavedBytes descending.
// Ties keep scan order.
func (r *Report) TopSavings(n int) []ImageRecord {
	top := make([]ImageRecord, len(r.Records))
	copy(top, r.Records)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].SavedBytes() > top[j].SavedBytes()
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
