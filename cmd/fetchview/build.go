package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

// indexHTML loads the bundle. Asset paths are absolute so that every
// client-side route serves the same page.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>fetchview</title>
    <script src="/wasm_exec.js"></script>
    <script>
        const go = new Go();
        WebAssembly.instantiateStreaming(fetch("/bundle.wasm"), go.importObject).then((result) => {
            go.run(result.instance);
        });
    </script>
</head>
<body></body>
</html>`

const (
	bundleFile   = "bundle.wasm"
	wasmExecFile = "wasm_exec.js"
	indexFile    = "index.html"
)

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Build the app for deployment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, args, cfg); err != nil {
				return err
			}
			return runBuild(cmd.Context(), newLogger(), cfg)
		},
	}
	cmd.Flags().StringP("output", "o", DefaultConfig().Output, "output directory")
	return cmd
}

func runBuild(ctx context.Context, logger *slog.Logger, cfg *Config) error {
	if err := checkMainPackage(cfg.Dir); err != nil {
		return err
	}
	logger.Info("building WASM bundle", "dir", cfg.Dir, "output", cfg.Output)
	buildDir, err := buildWASM(ctx, cfg.Dir)
	if err != nil {
		return fmt.Errorf("error building WASM: %w", err)
	}
	defer os.RemoveAll(buildDir)

	for _, name := range []string{bundleFile, wasmExecFile} {
		if err := copyFile(filepath.Join(buildDir, name), filepath.Join(cfg.Output, name)); err != nil {
			return err
		}
	}
	if err := os.WriteFile(filepath.Join(cfg.Output, indexFile), []byte(indexHTML), 0644); err != nil {
		return err
	}
	logger.Info("build complete", "output", cfg.Output)
	return nil
}

// checkMainPackage verifies that dir holds a main package.
func checkMainPackage(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("invalid app directory: %s", dir)
	}
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName,
		Dir:  dir,
		Env:  goEnv(dir, "GOOS=js", "GOARCH=wasm"),
	}, ".")
	if err != nil {
		return fmt.Errorf("failed to load package in %s: %w", dir, err)
	}
	if len(pkgs) == 0 || pkgs[0].Name != "main" {
		return fmt.Errorf("app directory %s is not package main", dir)
	}
	return nil
}

// buildArgs returns the go command arguments that compile the bundle to out.
func buildArgs(out string) []string {
	return []string{"build", "-o", out}
}

// buildWASM compiles the app in appDir to WebAssembly in a new temporary
// directory together with wasm_exec.js.
func buildWASM(ctx context.Context, appDir string) (string, error) {
	buildDir, err := os.MkdirTemp("", "fetchview-build-*")
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(appDir)
	if err != nil {
		os.RemoveAll(buildDir)
		return "", fmt.Errorf("failed to set app dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, "go", buildArgs(filepath.Join(buildDir, bundleFile))...)
	cmd.Env = goEnv(appDir, "GOOS=js", "GOARCH=wasm")
	cmd.Dir = absPath
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(buildDir)
		return "", err
	}

	if err := copyFile(wasmExecPath(runtime.GOROOT()), filepath.Join(buildDir, wasmExecFile)); err != nil {
		os.RemoveAll(buildDir)
		return "", err
	}
	return buildDir, nil
}

// wasmExecPath locates wasm_exec.js in goroot. Go 1.24 moved it from
// misc/wasm to lib/wasm.
func wasmExecPath(goroot string) string {
	p := filepath.Join(goroot, "lib", "wasm", wasmExecFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return filepath.Join(goroot, "misc", "wasm", wasmExecFile)
}

// copyFile copies a file from src to dst, creating parent directories.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
