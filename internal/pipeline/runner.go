package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/backmassage/assetkit/internal/config"
	"github.com/backmassage/assetkit/internal/display"
	"github.com/backmassage/assetkit/internal/imaging"
	"github.com/backmassage/assetkit/internal/logging"
)

// Run processes files sequentially and returns the aggregate report.
// codec may be nil (capability unavailable). In write mode each optimized
// candidate overwrites its original in place; in dry-run mode nothing on
// disk changes. Cancellation is checked between files so a file is never
// left half-written.
func Run(ctx context.Context, cfg *config.Config, codec imaging.Codec, files []string, log *logging.Logger) *Report {
	rep := NewReport(cfg, codec)
	opts := imaging.Options{
		Quality:   cfg.Images.Quality,
		MaxWidth:  cfg.Images.MaxWidth,
		MaxHeight: cfg.Images.MaxHeight,
	}
	cwd, _ := os.Getwd()

	for i, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted after %d of %d files", i, len(files))
			rep.Interrupted = true
			break
		}

		rec := Decide(ctx, codec, path, rep.TargetBytes, opts)
		if rec.Outcome == OutcomeOptimized && cfg.Images.Write {
			if err := writeInPlace(rec.Path, rec.candidate); err != nil {
				rec.fail(fmt.Errorf("write: %w", err))
			} else {
				rec.Written = true
			}
		}
		rec.candidate = nil

		logRecord(cfg, log, i+1, len(files), display.RelPath(cwd, path), &rec)
		rep.Add(rec)
	}
	return rep
}

// writeInPlace truncates and rewrites path, keeping its permissions. There
// is no rename and no backup.
func writeInPlace(path string, data []byte) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, fi.Mode().Perm())
}

func logRecord(cfg *config.Config, log *logging.Logger, n, total int, rel string, rec *ImageRecord) {
	switch rec.Outcome {
	case OutcomeOptimized:
		verb := "Would optimize"
		if rec.Written {
			verb = "Optimized"
		}
		log.Debug(cfg.Verbose, "[%d/%d] %s %s: %s -> %s",
			n, total, verb, rel, display.FormatKB(rec.BytesBefore), display.FormatKB(rec.BytesAfter))
	case OutcomeError:
		log.Warn("[%d/%d] %s: %s", n, total, rel, rec.SkipReason)
	default:
		log.Debug(cfg.Verbose, "[%d/%d] Skip %s (%s)", n, total, rel, rec.SkipReason)
	}
}
