//go:build unix

package filelog

import "golang.org/x/sys/unix"

// writable reports whether the current process may write to an existing path.
func writable(path string) error {
	return unix.Access(path, unix.W_OK)
}
