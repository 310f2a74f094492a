package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/assetkit/internal/catalog"
)

const sofa = `{"id": "sofa-001", "name": "Linen Sofa", "slug": "linen-sofa", "category": "sofas",
 "priceCents": 129900, "currency": "CAD", "stock": 4, "image": "/assets/sofa.jpg"}`

func TestRun_ExitCodes(t *testing.T) {
	assets := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "assets", "sofa.jpg"), []byte("x"), 0o644))

	noPrice := strings.Replace(strings.Replace(sofa, `"priceCents": 129900, `, "", 1), "sofa-001", "sofa-002", 1)
	noPrice = strings.Replace(noPrice, "linen-sofa", "linen-sofa-2", 1)

	tests := []struct {
		name    string
		content string
		want    int
		stdout  string
		stderr  string
	}{
		{"valid", "[" + sofa + "]", catalog.ExitOK, "Validation passed with no blocking errors.", ""},
		{"warnings only", `[` + strings.Replace(sofa, `"CAD"`, `"cad"`, 1) + `]`, catalog.ExitOK, "Warnings: 1\n", ""},
		{"missing price", "[" + sofa + "," + noPrice + "]", catalog.ExitInvalid, "- item[1]: missing required field 'priceCents'\n", ""},
		{"not an array", `{"products": []}`, catalog.ExitInvalid, "Products: 0\nErrors: 1\n", ""},
		{"invalid json", "[\n  {\"id\": }\n]", catalog.ExitFatal, "", "invalid JSON at line 2, column"},
		{"not utf-8", "[\"\xff\"]", catalog.ExitFatal, "", "failed to decode as UTF-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "products.json")
			require.NoError(t, os.WriteFile(file, []byte(tt.content), 0o644))

			var stdout, stderr bytes.Buffer
			code := run([]string{"--file", file, "--asset-root", assets, "--no-color"}, &stdout, &stderr)

			assert.Equal(t, tt.want, code, "stdout: %s\nstderr: %s", stdout.String(), stderr.String())
			if tt.stdout != "" {
				assert.Contains(t, stdout.String(), tt.stdout)
			}
			if tt.stderr != "" {
				assert.Contains(t, stderr.String(), tt.stderr)
			}
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "products.json")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--file", missing, "--no-color"}, &stdout, &stderr)

	assert.Equal(t, catalog.ExitFatal, code)
	assert.Contains(t, stderr.String(), "file not found: "+missing)
	assert.Empty(t, stdout.String())
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--max-kb", "10"}, &stdout, &stderr)
	assert.Equal(t, catalog.ExitFatal, code)
	assert.Contains(t, stderr.String(), "validate-products: unknown flag: --max-kb")
}

func TestRun_ConfigFileSetsAssetRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(file, []byte("["+sofa+"]"), 0o644))
	cfgPath := filepath.Join(dir, "assetkit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("products:\n  file: "+file+"\n  asset_root: "+dir+"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-c", cfgPath, "--no-color"}, &stdout, &stderr)

	assert.Equal(t, catalog.ExitOK, code)
	assert.Contains(t, stdout.String(), "Warnings: 1\n", "sofa.jpg does not exist under the configured root")
	assert.Contains(t, stdout.String(), "image file not found -> /assets/sofa.jpg")
}
