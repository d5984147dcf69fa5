package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand() *cobra.Command {
	defaults := DefaultConfig()
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Build and serve the app locally, rebuilding on change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, args, cfg); err != nil {
				return err
			}
			return runServe(cmd.Context(), newLogger(), cfg)
		},
	}
	cmd.Flags().IntP("port", "p", defaults.Port, "port to serve on")
	cmd.Flags().Bool("open", defaults.Open, "open the app in a browser")
	return cmd
}

// devServer serves the current build. Builds are swapped atomically so a
// rebuild never serves a half-written bundle.
type devServer struct {
	mu       sync.RWMutex
	buildDir string
}

func (s *devServer) dir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buildDir
}

// swap installs dir as the current build and returns the previous one.
func (s *devServer) swap(dir string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.buildDir
	s.buildDir = dir
	return old
}

// ServeHTTP serves the bundle and wasm_exec.js from the current build and
// the index page for every other path without an extension, so client-side
// routes such as /test survive a reload.
func (s *devServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch p := path.Clean(r.URL.Path); {
	case p == "/"+bundleFile:
		w.Header().Set("Content-Type", "application/wasm")
		http.ServeFile(w, r, filepath.Join(s.dir(), bundleFile))
	case p == "/"+wasmExecFile:
		http.ServeFile(w, r, filepath.Join(s.dir(), wasmExecFile))
	case path.Ext(p) == "":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	default:
		http.NotFound(w, r)
	}
}

// findFreePort listens on preferredPort, or on any free port when it is taken.
func findFreePort(preferredPort int, logger *slog.Logger) (net.Listener, error) {
	if preferredPort > 0 {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", preferredPort))
		if err == nil {
			return ln, nil
		}
		logger.Warn("port is in use, finding alternative", "port", preferredPort)
	}
	return net.Listen("tcp", ":0")
}

func runServe(ctx context.Context, logger *slog.Logger, cfg *Config) error {
	if err := checkMainPackage(cfg.Dir); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	logger.Info("building WASM bundle", "dir", cfg.Dir)
	buildDir, err := buildWASM(ctx, cfg.Dir)
	if err != nil {
		return fmt.Errorf("error building WASM: %w", err)
	}
	srv := &devServer{buildDir: buildDir}
	defer func() { os.RemoveAll(srv.dir()) }()

	listener, err := findFreePort(cfg.Port, logger)
	if err != nil {
		return fmt.Errorf("error finding free port: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	httpServer := &http.Server{Handler: srv}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		root := moduleRoot(cfg.Dir)
		if root == "" {
			root = cfg.Dir
		}
		return watchFiles(ctx, []string{root}, logger, func() error {
			logger.Info("rebuilding")
			newBuildDir, err := buildWASM(ctx, cfg.Dir)
			if err != nil {
				return fmt.Errorf("error rebuilding WASM: %w", err)
			}
			os.RemoveAll(srv.swap(newBuildDir))
			logger.Info("rebuild complete")
			return nil
		})
	})

	url := fmt.Sprintf("http://localhost:%d", port)
	logger.Info("serving app", "url", url, "watching", cfg.Dir)
	if cfg.Open {
		if err := open(url); err != nil {
			logger.Warn("failed to open browser", "error", err)
		}
	}
	return g.Wait()
}

var openCommands = map[string][]string{
	"windows": {"cmd", "/c", "start"},
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
}

func open(uri string) error {
	run, ok := openCommands[runtime.GOOS]
	if !ok {
		return fmt.Errorf("don't know how to open things on %s platform", runtime.GOOS)
	}
	if runtime.GOOS == "windows" {
		uri = strings.ReplaceAll(uri, "&", "^&")
	}
	run = append(run, uri)
	cmd := exec.Command(run[0], run[1:]...)
	return cmd.Start()
}
