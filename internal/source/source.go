// Package source reads a tesc source file from disk and enforces the
// CLI-facing checks of spec.md §6: the `.tesc` extension and
// existence/permission of the path, mapped to exitcode's taxonomy.
package source

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/tesc-lang/tesc/internal/exitcode"
)

// Error pairs an exitcode with the underlying cause, so the CLI layer
// can os.Exit with the right code after printing the message.
type Error struct {
	Code exitcode.Code
	Path string
	Err  error
}

func (e *Error) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Read validates path and returns its contents.
func Read(path string) (string, error) {
	if filepath.Ext(path) != ".tesc" {
		return "", &Error{Code: exitcode.FileExtensionNotTesc, Path: path, Err: errors.New("expected a .tesc file")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &Error{Code: exitcode.SourceFileNotFound, Path: path, Err: err}
		}
		if errors.Is(err, os.ErrPermission) {
			return "", &Error{Code: exitcode.SourcePermissionDenied, Path: path, Err: err}
		}
		return "", &Error{Code: exitcode.Unknown, Path: path, Err: err}
	}
	return string(data), nil
}
