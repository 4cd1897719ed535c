package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/exitcode"
)

func TestRead_WrongExtension(t *testing.T) {
	_, err := Read("test.txt")
	assert.Error(t, err)
	var srcErr *Error
	assert.ErrorAs(t, err, &srcErr)
	assert.Equal(t, exitcode.FileExtensionNotTesc, srcErr.Code)
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := Read("/nonexistent/path/to/file.tesc")
	assert.Error(t, err)
	var srcErr *Error
	assert.ErrorAs(t, err, &srcErr)
	assert.Equal(t, exitcode.SourceFileNotFound, srcErr.Code)
}

func TestRead_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.tesc")
	assert.NoError(t, os.WriteFile(path, []byte(`t("cat") { output("hi"); }`), 0o644))
	content, err := Read(path)
	assert.NoError(t, err)
	assert.Contains(t, content, "cat")
}

func TestRead_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root bypasses permission bits")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "noperm.tesc")
	assert.NoError(t, os.WriteFile(path, []byte(`t("cat") {}`), 0o000))
	_, err := Read(path)
	assert.Error(t, err)
	var srcErr *Error
	assert.ErrorAs(t, err, &srcErr)
	assert.Equal(t, exitcode.SourcePermissionDenied, srcErr.Code)
}
