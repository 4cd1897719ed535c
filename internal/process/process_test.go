package process

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tesc-lang/tesc/internal/exitcode"
)

func TestSpawn_MissingCommandIsProcessNotFound(t *testing.T) {
	_, err := Spawn("this-binary-does-not-exist-xyz", Options{})
	assert.Error(t, err)
	var spawnErr *SpawnError
	assert.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, exitcode.ProcessNotFound, spawnErr.Code)
}

func TestSpawn_EmptyCommandIsUnknown(t *testing.T) {
	_, err := Spawn("", Options{})
	assert.Error(t, err)
	var spawnErr *SpawnError
	assert.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, exitcode.Unknown, spawnErr.Code)
}

func TestHarness_SendAndReadLineRoundtrip(t *testing.T) {
	h, err := Spawn("cat", Options{Timeout: 2 * time.Second})
	assert.NoError(t, err)
	assert.NoError(t, h.Send("hello"))
	assert.NoError(t, h.ReadLine("hello"))
	h.Kill()
}

func TestHarness_ReadLineMismatchFails(t *testing.T) {
	h, err := Spawn("cat", Options{Timeout: 2 * time.Second})
	assert.NoError(t, err)
	assert.NoError(t, h.Send("hello"))
	err = h.ReadLine("goodbye")
	assert.Error(t, err)
	var failErr *FailureError
	assert.ErrorAs(t, err, &failErr)
	h.Kill()
}

func TestHarness_TerminateSucceedsOnCleanExit(t *testing.T) {
	h, err := Spawn("true", Options{Timeout: 2 * time.Second})
	assert.NoError(t, err)
	assert.NoError(t, h.Terminate())
}

func TestHarness_TerminateFailsOnNonzeroExit(t *testing.T) {
	h, err := Spawn("false", Options{Timeout: 2 * time.Second})
	assert.NoError(t, err)
	err = h.Terminate()
	assert.Error(t, err)
	var failErr *FailureError
	assert.ErrorAs(t, err, &failErr)
}

func TestHarness_ReadLineTimesOutOnSilentChild(t *testing.T) {
	h, err := Spawn("sleep 1", Options{Timeout: 50 * time.Millisecond})
	assert.NoError(t, err)
	err = h.ReadLine("anything")
	assert.Error(t, err)
	h.Kill()
}
