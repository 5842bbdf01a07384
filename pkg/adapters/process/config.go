package process

import (
	"runtime"
	"strings"
)

// Shell describes how a command line is handed to the operating system.
type Shell struct {
	Program string
	Args    []string
}

// DefaultShell returns "sh -c" on unix-like systems and "cmd /C" on Windows.
func DefaultShell() Shell {
	if runtime.GOOS == "windows" {
		return Shell{Program: "cmd", Args: []string{"/C"}}
	}
	return Shell{Program: "sh", Args: []string{"-c"}}
}

// ParseShell turns a configured shell line such as "bash -lc" into a Shell.
// An empty line yields DefaultShell.
func ParseShell(line string) Shell {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return DefaultShell()
	}
	return Shell{Program: fields[0], Args: fields[1:]}
}
