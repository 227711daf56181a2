//go:build windows

package probe

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
)

// foregroundSampler resolves the process image name of the foreground
// window via the Win32 API.
type foregroundSampler struct{}

// NewSampler returns the platform sampler.
func NewSampler() (Sampler, error) {
	return &foregroundSampler{}, nil
}

// Sample resolves the focused application's executable name. The process
// handle is scoped to this call and released on every exit path.
func (s *foregroundSampler) Sample() (string, bool, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", false, nil
	}

	var pid uint32
	_, _, _ = procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return "", false, nil
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", false, fmt.Errorf("open process %d: %w", pid, err)
	}
	defer func() {
		_ = windows.CloseHandle(handle)
	}()

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &size); err != nil {
		return "", false, fmt.Errorf("query image name for pid %d: %w", pid, err)
	}

	name := filepath.Base(windows.UTF16ToString(buf[:size]))
	if name == "" || name == "." {
		return "", false, nil
	}
	return name, true, nil
}
