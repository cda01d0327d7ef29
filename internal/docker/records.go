package docker

// ContainerState is the two-state view of a container shown in the UI.
// Docker reports a richer state machine (created, restarting, paused,
// exited, dead); everything that is not actively running collapses to
// StateStopped.
type ContainerState int

const (
	StateStopped ContainerState = iota
	StateRunning
)

// Label returns the display name of the state.
func (s ContainerState) Label() string {
	if s == StateRunning {
		return "Running"
	}
	return "Stopped"
}

// ActionLabel returns the name of the action that moves the container
// out of this state.
func (s ContainerState) ActionLabel() string {
	if s == StateRunning {
		return "Stop"
	}
	return "Start"
}

// Toggle returns the opposite state.
func (s ContainerState) Toggle() ContainerState {
	if s == StateRunning {
		return StateStopped
	}
	return StateRunning
}

// ContainerInfo holds the container fields shown in the dashboard.
type ContainerInfo struct {
	ID     string
	Name   string
	Image  string
	Status string
	Ports  string
	State  ContainerState
}

// ImageInfo holds the image fields shown in the dashboard.
type ImageInfo struct {
	ID         string
	Repository string
	Tag        string
	Size       string
}

// VolumeInfo holds the volume fields shown in the dashboard. Size is
// always a placeholder: the list endpoint does not report disk usage and
// we never fabricate one.
type VolumeInfo struct {
	Name       string
	Driver     string
	Mountpoint string
	Size       string
}
