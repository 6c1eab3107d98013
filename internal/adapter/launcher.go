package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Launcher opens web pages (IMDb entries, posters) in a browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	goos    string
	logger  *slog.Logger

	// start runs the command without waiting for it; swapped in tests
	start func(name string, args ...string) error
}

// launchPath defines a single way to open a URL
type launchPath struct {
	path      string   // Command path: "firefox" or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// browsers registry, keyed by lower-cased command base name
var browsers = map[string]map[string][]launchPath{
	"firefox": {
		"darwin":  {{path: "firefox"}, {path: "open-a:Firefox"}},
		"linux":   {{path: "firefox"}},
		"windows": {{path: "firefox"}},
	},
	"chrome": {
		"darwin":  {{path: "open-a:Google Chrome"}},
		"linux":   {{path: "google-chrome"}, {path: "chromium"}},
		"windows": {{path: "chrome"}},
	},
	"safari": {
		"darwin": {{path: "open-a:Safari"}},
	},
}

// NewLauncher creates a Launcher. An empty command uses the system default handler.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: strings.TrimSpace(command),
		args:    args,
		goos:    runtime.GOOS,
		logger:  logger,
		start:   startDetached,
	}
}

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launch opens url in the configured browser or the system default
func (l *Launcher) Launch(url string) error {
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return fmt.Errorf("refusing to open non-web URL %q", url)
	}

	if l.command == "" {
		name, args := defaultCommand(l.goos, url)
		l.logger.Info("opening with system default", "os", l.goos, "url", url)
		return l.start(name, args...)
	}

	for _, lp := range l.launchPaths() {
		name, args := lp.command(url, l.args)
		if err := l.start(name, args...); err != nil {
			l.logger.Debug("launch path not available", "path", lp.path, "error", err)
			continue
		}
		l.logger.Info("opened with configured browser", "path", lp.path, "url", url)
		return nil
	}
	return fmt.Errorf("could not start browser %q", l.command)
}

// launchPaths returns the ways to run the configured command, the command
// itself first, then known app bundles for the platform
func (l *Launcher) launchPaths() []launchPath {
	paths := []launchPath{{path: l.command}}

	base := strings.ToLower(filepath.Base(l.command))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, lp := range browsers[base][l.goos] {
		if lp.path != l.command {
			paths = append(paths, lp)
		}
	}
	return paths
}

// command builds the argv for one launch path. URL always goes last.
func (lp launchPath) command(url string, extra []string) (string, []string) {
	if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
		// Copy openFlags to avoid modifying the registry slice
		args := append([]string{}, lp.openFlags...)
		args = append(args, "-a", app)
		if len(extra) > 0 {
			args = append(args, "--args")
			args = append(args, extra...)
		}
		return "open", append(args, url)
	}
	args := append([]string{}, extra...)
	return lp.path, append(args, url)
}

// defaultCommand returns the platform's URL handler invocation
func defaultCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
