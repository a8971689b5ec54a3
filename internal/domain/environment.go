package domain

import (
	"path/filepath"
	"runtime"
)

// Layout describes where a virtual environment keeps its activation
// artifacts. The relative names are fixed per platform family and must match
// exactly for command execution to succeed.
type Layout struct {
	BinDir         string
	ActivateScript string
	Interpreter    string
}

// PlatformLayout returns the layout for the current platform.
func PlatformLayout() Layout {
	return layoutFor(runtime.GOOS)
}

func layoutFor(goos string) Layout {
	if goos == "windows" {
		return Layout{
			BinDir:         "Scripts",
			ActivateScript: "activate.bat",
			Interpreter:    "python.exe",
		}
	}

	return Layout{
		BinDir:         "bin",
		ActivateScript: "activate",
		Interpreter:    "python",
	}
}

// BinPath returns the absolute executable directory for an environment root.
func (l Layout) BinPath(root string) string {
	return filepath.Join(root, l.BinDir)
}

// ActivatePath returns the absolute activation marker path for an
// environment root.
func (l Layout) ActivatePath(root string) string {
	return filepath.Join(root, l.BinDir, l.ActivateScript)
}

// InterpreterPath returns the absolute interpreter path for an environment
// root.
func (l Layout) InterpreterPath(root string) string {
	return filepath.Join(root, l.BinDir, l.Interpreter)
}
