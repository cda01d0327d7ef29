package state

import (
	"context"
	"fmt"

	"github.com/MH0386/doctainr/internal/docker"
	"github.com/MH0386/doctainr/internal/logger"
)

// ErrNoService is surfaced by every operation when the Docker client
// could not be constructed at startup.
const ErrNoService = "Docker service not available"

// AppState owns the authoritative snapshot of the engine's resources and
// the operations that refresh or mutate them. All fields are reactive:
// the TUI reads them and re-renders on change.
//
// Operations are fire-and-forget: each spawns a goroutine and returns a
// channel closed on completion, which production callers discard. There
// is no de-duplication: two overlapping refreshes of the same resource
// are allowed, and the one that completes last wins. Failures never touch
// the existing collection; they only set LastError.
type AppState struct {
	DockerHost *Signal[string]
	Containers *Signal[[]docker.ContainerInfo]
	Images     *Signal[[]docker.ImageInfo]
	Volumes    *Signal[[]docker.VolumeInfo]

	// LastAction records the most recent successful user-initiated
	// effect; LastError the most recent failure. Empty means none.
	// Any success clears LastError; nothing clears LastAction.
	LastAction *Signal[string]
	LastError  *Signal[string]
	Loading    *Signal[bool]

	// client is nil when the daemon was unreachable at startup. The app
	// stays usable; every operation reports ErrNoService.
	client docker.Client
}

// New creates an AppState with empty collections. client may be nil.
func New(client docker.Client, host string) *AppState {
	return &AppState{
		DockerHost: NewSignal(host),
		Containers: NewSignal([]docker.ContainerInfo(nil)),
		Images:     NewSignal([]docker.ImageInfo(nil)),
		Volumes:    NewSignal([]docker.VolumeInfo(nil)),
		LastAction: NewSignal(""),
		LastError:  NewSignal(""),
		Loading:    NewSignal(false),
		client:     client,
	}
}

// Connected reports whether a Docker client is attached.
func (a *AppState) Connected() bool {
	return a.client != nil
}

// Subscribe returns a channel that wakes whenever any field changes.
// Notification is coalesced; read the signals for current values.
func (a *AppState) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	a.DockerHost.Attach(ch)
	a.Containers.Attach(ch)
	a.Images.Attach(ch)
	a.Volumes.Attach(ch)
	a.LastAction.Attach(ch)
	a.LastError.Attach(ch)
	a.Loading.Attach(ch)
	return ch
}

// RefreshAll triggers the three refresh operations without waiting for
// any of them. Each surfaces errors independently through LastError, so a
// later success can overwrite an earlier failure's message.
func (a *AppState) RefreshAll() {
	a.RefreshContainers()
	a.RefreshImages()
	a.RefreshVolumes()
}

// RefreshContainers replaces the container collection with a fresh
// listing. On failure the previous collection stays visible.
func (a *AppState) RefreshContainers() <-chan struct{} {
	return refreshInto(a, a.Containers, "containers", docker.Client.ListContainers)
}

// RefreshImages replaces the image collection with a fresh listing.
func (a *AppState) RefreshImages() <-chan struct{} {
	return refreshInto(a, a.Images, "images", docker.Client.ListImages)
}

// RefreshVolumes replaces the volume collection with a fresh listing.
func (a *AppState) RefreshVolumes() <-chan struct{} {
	return refreshInto(a, a.Volumes, "volumes", docker.Client.ListVolumes)
}

func refreshInto[T any](a *AppState, sig *Signal[[]T], what string, list func(docker.Client, context.Context) ([]T, error)) <-chan struct{} {
	done := make(chan struct{})
	if a.client == nil {
		a.LastError.Set(ErrNoService)
		close(done)
		return done
	}
	go func() {
		defer close(done)
		a.Loading.Set(true)
		defer a.Loading.Set(false)

		data, err := list(a.client, context.Background())
		if err != nil {
			logger.WithError(err).Errorf("list %s failed", what)
			a.LastError.Set(fmt.Sprintf("Failed to list %s: %v", what, err))
			return
		}
		sig.Set(data)
		a.LastError.Set("")
	}()
	return done
}

// StartContainer starts a container and, on success, dispatches a
// container refresh to pick up the new state. No precondition check:
// starting an already-running container surfaces the daemon's own error.
func (a *AppState) StartContainer(id string) <-chan struct{} {
	return a.command(id, "start", "Started container", docker.Client.StartContainer)
}

// StopContainer stops a container; symmetric to StartContainer.
func (a *AppState) StopContainer(id string) <-chan struct{} {
	return a.command(id, "stop", "Stopped container", docker.Client.StopContainer)
}

func (a *AppState) command(id, verb, actionMsg string, op func(docker.Client, context.Context, string) error) <-chan struct{} {
	done := make(chan struct{})
	if a.client == nil {
		a.LastError.Set(ErrNoService)
		close(done)
		return done
	}
	go func() {
		defer close(done)
		a.Loading.Set(true)
		defer a.Loading.Set(false)

		if err := op(a.client, context.Background(), id); err != nil {
			logger.WithError(err).WithField("container", id).Errorf("%s failed", verb)
			a.LastError.Set(fmt.Sprintf("Failed to %s container: %v", verb, err))
			return
		}
		logger.WithField("container", id).Infof("container %s ok", verb)
		a.LastAction.Set(fmt.Sprintf("%s %s", actionMsg, id))
		a.LastError.Set("")
		// The refresh is dispatched only after the command succeeded; it
		// may still race with a user-triggered refresh, last write wins.
		a.RefreshContainers()
	}()
	return done
}

// SetContainerState routes to StartContainer or StopContainer depending
// on the desired state. Pure dispatch, no extra semantics.
func (a *AppState) SetContainerState(id string, desired docker.ContainerState) <-chan struct{} {
	if desired == docker.StateRunning {
		return a.StartContainer(id)
	}
	return a.StopContainer(id)
}

// TestConnection pings the daemon and reports the outcome through the
// usual channels.
func (a *AppState) TestConnection() <-chan struct{} {
	done := make(chan struct{})
	if a.client == nil {
		a.LastError.Set(ErrNoService)
		close(done)
		return done
	}
	go func() {
		defer close(done)
		if err := a.client.Ping(context.Background()); err != nil {
			a.LastError.Set(fmt.Sprintf("Docker connection failed: %v", err))
			return
		}
		a.LastAction.Set("Docker connection OK")
		a.LastError.Set("")
	}()
	return done
}

// SetDockerHost updates the endpoint shown in settings. The client is
// built once at startup, so a new endpoint takes effect on restart.
func (a *AppState) SetDockerHost(host string) {
	a.DockerHost.Set(host)
}

// RecordAction sets the last-action message directly, for UI actions that
// do not go through the daemon.
func (a *AppState) RecordAction(msg string) {
	a.LastAction.Set(msg)
}

// RecordError surfaces a failure that happened outside an adapter call,
// e.g. writing the settings file.
func (a *AppState) RecordError(msg string) {
	a.LastError.Set(msg)
}
