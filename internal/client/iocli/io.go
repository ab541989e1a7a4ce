// Package iocli abstracts terminal input/output so command runners can
// be exercised in tests without a real TTY.
package iocli

// IO is the terminal surface used by the CLI commands.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
	Write(p []byte) (n int, err error)
}
