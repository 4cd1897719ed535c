package process

import (
	"errors"
	"os"
	"os/exec"
)

// isNotFound reports whether err indicates the executable could not be
// located (spec.md §6's ProcessNotFound, exit code 21).
func isNotFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist)
}

// isPermissionDenied reports whether err indicates the executable
// couldn't be run for lack of permission (spec.md §6's
// ProcessPermissionDenied, exit code 22).
func isPermissionDenied(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
