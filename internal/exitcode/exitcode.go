// Package exitcode names the tesc CLI's process exit codes (spec.md
// §6), grounded on _examples/original_source/src/exitcode.rs.
package exitcode

type Code int

const (
	OK                     Code = 0
	SourceFileNotFound     Code = 1
	FileExtensionNotTesc   Code = 2
	SourcePermissionDenied Code = 3

	ProcessNotFound         Code = 21
	ProcessPermissionDenied Code = 22

	Unknown Code = 101

	// TestFailure is not in the original enum: the original process
	// exits 0/1 purely based on "did a test fail", which the original
	// spec.md §7 states too ("exit code is 0 iff no test failed and no
	// error was reported"). Named separately from the syscall-classified
	// codes above, though its value equals SourceFileNotFound's.
	TestFailure Code = 1
)
