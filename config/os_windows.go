//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
	"golang.org/x/term"
)

// enableVirtualTerminalProcessing is ENABLE_VIRTUAL_TERMINAL_PROCESSING console mode flag.
const enableVirtualTerminalProcessing uint32 = 0x4

// windowsMajorVersion reads major version of running Windows, 0 if unknown.
func windowsMajorVersion() uint64 {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return 0
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("CurrentMajorVersionNumber")
	if err != nil {
		return 0
	}
	return v
}

// EnableColorOutput checks if colorized output is possible and switches
// console to VT100 sequence processing. Requires Windows 10 or later.
func EnableColorOutput(stream *os.File) bool {
	if windowsMajorVersion() < 10 || !term.IsTerminal(int(stream.Fd())) {
		return false
	}

	h := windows.Handle(stream.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|enableVirtualTerminalProcessing) == nil
}
