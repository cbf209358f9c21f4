package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"gazecheck/internal/stimulus"
	"gazecheck/internal/tracker"
)

// CheckDirectoryReadable verifies that the directory exists and can be
// listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

// CheckDirectoryWritable verifies that the directory exists and is
// readable and writable.
func CheckDirectoryWritable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
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
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckCatalog verifies that the stimulus catalog exists and parses. A
// catalog that loads but holds no stimuli fails the check.
func CheckCatalog(path string) Result {
	const name = "Stimulus catalog"
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	catalog, err := stimulus.LoadCatalog(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if catalog.Len() == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: catalog is empty)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d stimuli)", path, catalog.Len())}
}

// CheckResultsDB verifies that the results database can be created: its
// parent directory must exist (or be creatable) and be writable.
func CheckResultsDB(path string) Result {
	const name = "Results database"
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return Result{Name: name, Passed: true, Detail: path}
	}
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: parent is not a directory)", path)}
		}
		if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (parent writable)", path)}
	}
	// Parent absent: creatable as long as some ancestor is writable.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: create parent: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (parent created)", path)}
}

// CheckTracker verifies the configured tracker kind is supported.
func CheckTracker(kind string) Result {
	const name = "Tracker"
	caps, err := tracker.Resolve(kind)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (marker %q)", caps.Kind, caps.MessageMarker)}
}
