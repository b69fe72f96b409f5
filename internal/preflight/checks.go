package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"moviestats/internal/config"
	"moviestats/internal/tmdb"
)

// tmdbCheckTimeout bounds the credential probe.
const tmdbCheckTimeout = 10 * time.Second

// CheckTMDB verifies the API key by fetching /configuration, and that the
// configured poster size is one TMDB offers.
func CheckTMDB(ctx context.Context, cfg *config.Config) Result {
	const name = "TMDB"

	if err := cfg.ValidateTMDB(); err != nil {
		return Result{Name: name, Detail: "API key missing"}
	}
	client, err := tmdb.NewFromConfig(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, tmdbCheckTimeout)
	defer cancel()

	images, err := client.Configuration(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeTMDBError(err)}
	}
	size := strings.TrimSpace(cfg.TMDB.PosterSize)
	if size != "" && len(images.PosterSizes) > 0 && !slices.Contains(images.PosterSizes, size) {
		return Result{Name: name, Detail: fmt.Sprintf("poster size %q not offered (have %s)", size, strings.Join(images.PosterSizes, ", "))}
	}
	return Result{Name: name, Passed: true, Detail: "API key accepted"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckStatsFile verifies the aggregate file can be replaced: its directory
// must be writable and an existing file must be a regular file.
func CheckStatsFile(path string) Result {
	const name = "Statistics file"

	path = strings.TrimSpace(path)
	if path == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	if dirCheck := CheckDirectoryAccess(name, filepath.Dir(path)); !dirCheck.Passed {
		return dirCheck
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.Mode().IsRegular():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", path)}
	case err == nil:
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be replaced)", path)}
	case os.IsNotExist(err):
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
}

// summarizeTMDBError produces a human-readable summary for credential probe failures.
func summarizeTMDBError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (TMDB unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (TMDB unreachable)"
	}
	var statusErr *tmdb.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "auth failed (invalid api key)"
		default:
			return fmt.Sprintf("check failed (%d)", statusErr.StatusCode)
		}
	}
	return err.Error()
}
