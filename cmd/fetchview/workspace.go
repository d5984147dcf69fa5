package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// findGoWork searches for a go.work file starting from dir and walking up.
func findGoWork(dir string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		workFile := filepath.Join(absDir, "go.work")
		if _, err := os.Stat(workFile); err == nil {
			return workFile
		}
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return ""
		}
		absDir = parent
	}
}

// parseWorkspaceModules returns the absolute module directories named by the
// use directives of workFile.
func parseWorkspaceModules(workFile string) ([]string, error) {
	file, err := os.Open(workFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var modules []string
	scanner := bufio.NewScanner(file)
	inUseBlock := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		switch {
		case line == "":
		case strings.HasPrefix(line, "use ("), line == "use(":
			inUseBlock = true
		case strings.HasPrefix(line, "use "):
			modules = append(modules, strings.TrimSpace(strings.TrimPrefix(line, "use")))
		case inUseBlock && line == ")":
			inUseBlock = false
		case inUseBlock:
			modules = append(modules, line)
		}
	}

	workDir := filepath.Dir(workFile)
	for i, module := range modules {
		if !filepath.IsAbs(module) {
			modules[i] = filepath.Join(workDir, module)
		}
	}
	return modules, scanner.Err()
}

// moduleRoot returns the directory of the go.mod governing dir.
func moduleRoot(dir string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(absDir, "go.mod")); err == nil {
			return absDir
		}
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return ""
		}
		absDir = parent
	}
}

// shouldDisableWorkspace reports whether GOWORK must be turned off to build
// dir: true when a go.work exists above it but does not use its module.
func shouldDisableWorkspace(dir string) bool {
	workFile := findGoWork(dir)
	if workFile == "" {
		return false
	}
	modules, err := parseWorkspaceModules(workFile)
	if err != nil {
		return false
	}
	root := moduleRoot(dir)
	for _, module := range modules {
		if filepath.Clean(module) == root {
			return false
		}
	}
	return true
}

// goEnv returns the environment for go commands run against dir.
func goEnv(dir string, extra ...string) []string {
	env := append(os.Environ(), extra...)
	if shouldDisableWorkspace(dir) {
		env = append(env, "GOWORK=off")
	}
	return env
}
