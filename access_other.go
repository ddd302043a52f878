//go:build !unix

package filelog

import "os"

// writable falls back to the owner write bit where access(2) is unavailable.
func writable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0o200 == 0 {
		return os.ErrPermission
	}
	return nil
}
