package domain

// ToolStatus is the classification of a version probe.
type ToolStatus int

const (
	ToolAbsent ToolStatus = iota
	ToolPresent
)

func (s ToolStatus) String() string {
	switch s {
	case ToolPresent:
		return "present"
	case ToolAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// InstallOutcome is the classification of an install command.
type InstallOutcome int

const (
	InstallFailed InstallOutcome = iota
	InstalledWithWarnings
	Installed
)

func (o InstallOutcome) String() string {
	switch o {
	case Installed:
		return "installed"
	case InstalledWithWarnings:
		return "installed_with_warnings"
	case InstallFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the tool is usable after the install.
func (o InstallOutcome) Succeeded() bool {
	return o == Installed || o == InstalledWithWarnings
}
