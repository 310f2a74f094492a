// Command validate-products checks the storefront product file for missing
// fields, wrong types, duplicate ids/slugs and broken image references.
//
// Exit status: 0 when no blocking errors were found (warnings allowed),
// 1 on validation errors, 2 when the file is missing, not UTF-8, not valid
// JSON, or the configuration is invalid.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/assetkit/internal/catalog"
	"github.com/backmassage/assetkit/internal/config"
	"github.com/backmassage/assetkit/internal/display"
	"github.com/backmassage/assetkit/internal/logging"
)

// version is injected at build time via -ldflags.
var version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	code := catalog.ExitOK
	cmd := &cobra.Command{
		Use:           "validate-products",
		Short:         "Validate the storefront product data file",
		Example:       "  validate-products\n  validate-products --file frontend/data/products.json",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.BindProductFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		code = validate(cmd, flags, stdout, stderr)
		return nil
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "validate-products: %v\n", err)
		return catalog.ExitFatal
	}
	return code
}

func validate(cmd *cobra.Command, flags *config.Flags, stdout, stderr io.Writer) int {
	cfg, err := flags.Resolve(cmd.Flags())
	if err == nil {
		err = cfg.ValidateProducts()
	}
	if err != nil {
		fmt.Fprintf(stderr, "validate-products: %v\n", err)
		return catalog.ExitFatal
	}

	log, err := logging.NewLogger(&cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "validate-products: %v\n", err)
		return catalog.ExitFatal
	}
	defer log.Close()

	cwd, err := os.Getwd()
	if err != nil {
		log.Error("cannot determine working directory: %v", err)
		return catalog.ExitFatal
	}
	path := config.ResolvePath(cwd, cfg.Products.File)
	assets := catalog.AssetResolver{Root: config.ResolvePath(cwd, cfg.Products.AssetRoot)}
	log.Debug(cfg.Verbose, "Product file: %s", path)
	log.Debug(cfg.Verbose, "Asset root: %s", assets.Root)

	// Missing file, bad encoding and malformed JSON are all fatal.
	data, err := catalog.Load(path)
	if err != nil {
		log.Error("%v", err)
		return catalog.ExitFatal
	}

	res := catalog.Validate(data, assets)
	if err := catalog.WriteReport(stdout, display.RelPath(cwd, path), &res); err != nil {
		log.Error("write report: %v", err)
	}
	return catalog.ExitCode(&res)
}
