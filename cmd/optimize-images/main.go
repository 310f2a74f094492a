// Command optimize-images audits the storefront image assets and, with
// --write, re-encodes oversized files in place.
//
// It resolves configuration (defaults, optional config file, flags), checks
// the asset root, picks the imaging engine, runs the pipeline and prints the
// savings report. Exit status is 0 unless the root is missing or the
// configuration is invalid (2).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/assetkit/internal/check"
	"github.com/backmassage/assetkit/internal/config"
	"github.com/backmassage/assetkit/internal/display"
	"github.com/backmassage/assetkit/internal/imaging"
	"github.com/backmassage/assetkit/internal/logging"
	"github.com/backmassage/assetkit/internal/pipeline"
)

// version is injected at build time via -ldflags.
var version = "1.0.0"

const (
	exitOK    = 0
	exitFatal = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	code := exitOK
	cmd := &cobra.Command{
		Use:           "optimize-images",
		Short:         "Audit and optionally optimize storefront image assets",
		Long:          "Scans the asset directory for JPEG, PNG and WebP files larger than the target size,\nre-encodes them and reports the savings. Nothing is written without --write.",
		Example:       "  optimize-images\n  optimize-images --write --max-kb 100 --quality 78",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.BindImageFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		code = optimize(cmd.Context(), cmd, flags, stdout, stderr)
		return nil
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "optimize-images: %v\n", err)
		return exitFatal
	}
	return code
}

func optimize(ctx context.Context, cmd *cobra.Command, flags *config.Flags, stdout, stderr io.Writer) int {
	// Phase 1: Bootstrap. Errors go straight to stderr until the logger exists.
	cfg, err := flags.Resolve(cmd.Flags())
	if err == nil {
		err = cfg.ValidateImages()
	}
	if err != nil {
		fmt.Fprintf(stderr, "optimize-images: %v\n", err)
		return exitFatal
	}

	log, err := logging.NewLogger(&cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "optimize-images: %v\n", err)
		return exitFatal
	}
	defer log.Close()

	tools := imaging.LookupTools()
	if cfg.CheckOnly {
		check.RunCheck(&cfg, tools, log)
		return exitOK
	}

	// Phase 2: Resolve and scan the asset root.
	cwd, err := os.Getwd()
	if err != nil {
		log.Error("cannot determine working directory: %v", err)
		return exitFatal
	}
	root := config.ResolvePath(cwd, cfg.Images.Root)
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		log.Error("directory not found: %s", root)
		return exitFatal
	}
	files, err := pipeline.Discover(root)
	if err != nil {
		log.Error("cannot scan %s: %v", root, err)
		return exitFatal
	}
	if len(files) == 0 {
		fmt.Fprintf(stdout, "No images found under %s\n", root)
		return exitOK
	}
	cfg.Images.Root = root

	codec, err := check.Capability(&cfg, tools)
	if err != nil {
		log.Warn("%v; images will be audited but not optimized", err)
	}
	log.Debug(cfg.Verbose, "Found %d images, engine %s, helpers: cwebp=%q jpegtran=%q magick=%q",
		len(files), cfg.Images.Engine, tools.Cwebp, tools.Jpegtran, tools.Magick)

	// Phase 3: Signal handling. Cancel between files so nothing is left
	// half-written.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing current file…")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Run and report.
	rep := pipeline.Run(ctx, &cfg, codec, files, log)
	if err := pipeline.WriteReport(stdout, rep, cwd); err != nil {
		log.Error("write report: %v", err)
	}
	if rep.Written > 0 {
		log.Success("Rewrote %d files, %s saved", rep.Written, display.FormatBytes(rep.Saved()))
	}
	return exitOK
}
