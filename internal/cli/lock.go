package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

var findProcessFunc = ps.FindProcess

// lockFilePath returns the path of the single-writer lock file kept next
// to the storage file.
func lockFilePath(configPath string) string {
	return configPath + ".lock"
}

// AcquireProcessLock marks this process as the active writer for the
// storage at configPath. It fails when another live focuslog process
// already holds the lock; a lock left behind by a dead process is taken
// over silently.
func (c *Context) AcquireProcessLock() error {
	path := lockFilePath(c.Store.GetConfigPath())

	if pid, ok := readLockFile(path); ok && pid != os.Getpid() {
		if process, err := findProcessFunc(pid); err == nil && process != nil {
			return fmt.Errorf("another focuslog process (pid %d) is using this storage", pid)
		}
	}

	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600)
}

// ReleaseProcessLock removes the lock if this process owns it.
func (c *Context) ReleaseProcessLock() {
	path := lockFilePath(c.Store.GetConfigPath())
	if pid, ok := readLockFile(path); ok && pid == os.Getpid() {
		_ = os.Remove(path)
	}
}

// checkSingleWriter reports whether another live process holds the lock.
func checkSingleWriter(configPath string) error {
	pid, ok := readLockFile(lockFilePath(configPath))
	if !ok || pid == os.Getpid() {
		return nil
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		// Stale lock from a dead process
		return nil
	}
	return fmt.Errorf("another focuslog process (pid %d) is using this storage", pid)
}

func readLockFile(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
