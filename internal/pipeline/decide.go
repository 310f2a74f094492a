package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/assetkit/internal/display"
	"github.com/backmassage/assetkit/internal/imaging"
)

// Outcome is the single classification every scanned file receives.
type Outcome int

const (
	OutcomeOptimized Outcome = iota
	OutcomeWithinTarget
	OutcomeNoReduction
	OutcomeUnsupported
	OutcomeError
	OutcomeUnavailable

	numOutcomes
)

var outcomeNames = [numOutcomes]string{
	OutcomeOptimized:    "optimized",
	OutcomeWithinTarget: "within-target",
	OutcomeNoReduction:  "no-reduction",
	OutcomeUnsupported:  "unsupported",
	OutcomeError:        "error",
	OutcomeUnavailable:  "unavailable",
}

func (o Outcome) String() string {
	if o < 0 || o >= numOutcomes {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Skip reasons recorded on non-optimized records.
const (
	ReasonUnavailable  = "imaging library not installed"
	ReasonWithinTarget = "already <= target"
	ReasonUnsupported  = "unsupported format"
	ReasonNoReduction  = "no size reduction"
)

// ImageRecord is the per-file result of a run.
type ImageRecord struct {
	Path        string
	BytesBefore int64
	BytesAfter  int64
	Optimized   bool
	SkipReason  string
	Outcome     Outcome
	Written     bool

	candidate []byte // re-encoded bytes; held only until the runner writes them
}

// KBBefore returns the original size in KB.
func (r *ImageRecord) KBBefore() float64 { return display.KB(r.BytesBefore) }

// KBAfter returns the final size in KB.
func (r *ImageRecord) KBAfter() float64 { return display.KB(r.BytesAfter) }

// SavedBytes returns max(0, before-after).
func (r *ImageRecord) SavedBytes() int64 {
	return max(0, r.BytesBefore-r.BytesAfter)
}

func (r *ImageRecord) skip(o Outcome, reason string) {
	r.Outcome = o
	r.SkipReason = reason
	r.Optimized = false
	r.BytesAfter = r.BytesBefore
	r.candidate = nil
}

func (r *ImageRecord) fail(err error) {
	r.skip(OutcomeError, "error: "+err.Error())
}

// Decide classifies one file without touching it on disk. The ladder is
// evaluated in order: unavailable, within target, then a trial encode whose
// result is unsupported, an error, no reduction, or optimized. A nil codec
// means the imaging capability is unavailable. Panics raised while encoding
// are recovered into an error outcome.
func Decide(ctx context.Context, codec imaging.Codec, path string, target int64, opts imaging.Options) (rec ImageRecord) {
	rec.Path = path

	fi, err := os.Stat(path)
	if err != nil {
		rec.fail(err)
		return rec
	}
	rec.BytesBefore = fi.Size()
	rec.BytesAfter = rec.BytesBefore

	if codec == nil {
		rec.skip(OutcomeUnavailable, ReasonUnavailable)
		return rec
	}
	if rec.BytesBefore <= target {
		rec.skip(OutcomeWithinTarget, ReasonWithinTarget)
		return rec
	}

	defer func() {
		if p := recover(); p != nil {
			rec.fail(fmt.Errorf("panic: %v", p))
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		rec.fail(err)
		return rec
	}

	out, err := codec.Encode(ctx, src, imaging.FormatFromPath(path), opts)
	switch {
	case errors.Is(err, imaging.ErrUnsupported), err == nil && len(out) == 0:
		rec.skip(OutcomeUnsupported, ReasonUnsupported)
	case err != nil:
		rec.fail(err)
	case int64(len(out)) >= rec.BytesBefore:
		rec.skip(OutcomeNoReduction, ReasonNoReduction)
	default:
		rec.Outcome = OutcomeOptimized
		rec.Optimized = true
		rec.BytesAfter = int64(len(out))
		rec.candidate = out
	}
	return rec
}
