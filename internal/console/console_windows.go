//go:build windows

// Package console detects a double-click launch so the binary can default
// to serving and keep its window open on errors.
package console

import (
	"log/slog"
	"os"
	"slices"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow = kernel32.NewProc("GetConsoleWindow")
)

var shells = []string{"cmd.exe", "powershell.exe", "pwsh.exe", "wt.exe", "conhost.exe", "windowsterminal.exe"}

// DoubleClicked reports whether the process was started from Explorer or
// without a console.
func DoubleClicked() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	if hwnd == 0 {
		return true
	}
	parent := strings.ToLower(parentProcessName())
	slog.Debug("parent process", "name", parent)
	if slices.Contains(shells, parent) {
		return false
	}
	return parent == "explorer.exe"
}

func parentProcessName() string {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(snapshot)

	names := map[uint32]string{}
	var parent uint32
	self := uint32(os.Getpid())

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))
	for err = windows.Process32First(snapshot, &pe); err == nil; err = windows.Process32Next(snapshot, &pe) {
		names[pe.ProcessID] = windows.UTF16ToString(pe.ExeFile[:])
		if pe.ProcessID == self {
			parent = pe.ParentProcessID
		}
	}
	if parent == 0 {
		return ""
	}
	return names[parent]
}
