package state

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MH0386/doctainr/internal/docker"
)

// fakeClient implements docker.Client with overridable behavior and call
// counters.
type fakeClient struct {
	listContainersFn func(ctx context.Context) ([]docker.ContainerInfo, error)
	listImagesFn     func(ctx context.Context) ([]docker.ImageInfo, error)
	listVolumesFn    func(ctx context.Context) ([]docker.VolumeInfo, error)
	startFn          func(ctx context.Context, id string) error
	stopFn           func(ctx context.Context, id string) error
	pingFn           func(ctx context.Context) error

	listContainersCalls atomic.Int32
	listImagesCalls     atomic.Int32
	listVolumesCalls    atomic.Int32
	startCalls          atomic.Int32
	stopCalls           atomic.Int32
}

var _ docker.Client = (*fakeClient)(nil)

func (f *fakeClient) ListContainers(ctx context.Context) ([]docker.ContainerInfo, error) {
	f.listContainersCalls.Add(1)
	if f.listContainersFn != nil {
		return f.listContainersFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) ListImages(ctx context.Context) ([]docker.ImageInfo, error) {
	f.listImagesCalls.Add(1)
	if f.listImagesFn != nil {
		return f.listImagesFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) ListVolumes(ctx context.Context) ([]docker.VolumeInfo, error) {
	f.listVolumesCalls.Add(1)
	if f.listVolumesFn != nil {
		return f.listVolumesFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) StartContainer(ctx context.Context, id string) error {
	f.startCalls.Add(1)
	if f.startFn != nil {
		return f.startFn(ctx, id)
	}
	return nil
}

func (f *fakeClient) StopContainer(ctx context.Context, id string) error {
	f.stopCalls.Add(1)
	if f.stopFn != nil {
		return f.stopFn(ctx, id)
	}
	return nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	if f.pingFn != nil {
		return f.pingFn(ctx)
	}
	return nil
}

func (f *fakeClient) Close() error { return nil }

func await(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("operation did not complete")
	}
}

var webContainer = docker.ContainerInfo{
	ID:     "abc123",
	Name:   "web",
	Image:  "nginx:latest",
	Status: "Up 2 hours",
	Ports:  "8080:80",
	State:  docker.StateRunning,
}

func TestRefreshContainersPopulatesSnapshot(t *testing.T) {
	fake := &fakeClient{
		listContainersFn: func(ctx context.Context) ([]docker.ContainerInfo, error) {
			return []docker.ContainerInfo{webContainer}, nil
		},
	}
	app := New(fake, "")

	await(t, app.RefreshContainers())

	assert.Equal(t, []docker.ContainerInfo{webContainer}, app.Containers.Get())
	assert.Empty(t, app.LastError.Get())
	assert.False(t, app.Loading.Get())
}

func TestRefreshContainersIdempotent(t *testing.T) {
	fake := &fakeClient{
		listContainersFn: func(ctx context.Context) ([]docker.ContainerInfo, error) {
			return []docker.ContainerInfo{webContainer}, nil
		},
	}
	app := New(fake, "")

	await(t, app.RefreshContainers())
	first := app.Containers.Get()
	await(t, app.RefreshContainers())
	second := app.Containers.Get()

	assert.Equal(t, first, second)
	assert.Equal(t, int32(2), fake.listContainersCalls.Load())
}

func TestRefreshFailureKeepsPreviousData(t *testing.T) {
	containers := []docker.ContainerInfo{
		{ID: "c1", Name: "one"},
		{ID: "c2", Name: "two"},
	}
	fake := &fakeClient{}
	fake.listContainersFn = func(ctx context.Context) ([]docker.ContainerInfo, error) {
		return containers, nil
	}
	app := New(fake, "")
	await(t, app.RefreshContainers())
	require.Equal(t, containers, app.Containers.Get())

	fake.listContainersFn = func(ctx context.Context) ([]docker.ContainerInfo, error) {
		return nil, errors.New("daemon unreachable")
	}
	await(t, app.RefreshContainers())

	assert.Equal(t, containers, app.Containers.Get(), "failed refresh must not tear down existing data")
	assert.Contains(t, app.LastError.Get(), "daemon unreachable")
	assert.False(t, app.Loading.Get())
}

func TestRefreshImagesLastWriteWins(t *testing.T) {
	imagesA := []docker.ImageInfo{{ID: "aa11", Repository: "nginx", Tag: "1.25"}}
	imagesB := []docker.ImageInfo{{ID: "bb22", Repository: "redis", Tag: "7"}}

	started := make(chan struct{})
	gate := make(chan struct{})
	fake := &fakeClient{}
	fake.listImagesFn = func(ctx context.Context) ([]docker.ImageInfo, error) {
		if fake.listImagesCalls.Load() == 1 {
			// First call stays in flight until released.
			close(started)
			<-gate
			return imagesA, nil
		}
		return imagesB, nil
	}
	app := New(fake, "")

	first := app.RefreshImages()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first refresh never reached the adapter")
	}

	// Second refresh is issued while the first is still pending and
	// completes first.
	second := app.RefreshImages()
	await(t, second)
	require.Equal(t, imagesB, app.Images.Get())
	require.Empty(t, app.LastError.Get())

	// Releasing the first makes it the last completed write, so its
	// result wins even though it was issued earlier.
	close(gate)
	await(t, first)
	assert.Equal(t, imagesA, app.Images.Get(), "the refresh completing last determines the final value")
}

func TestStartContainerDispatchesRefresh(t *testing.T) {
	fake := &fakeClient{}
	app := New(fake, "")

	await(t, app.StartContainer("abc123"))

	assert.Equal(t, "Started container abc123", app.LastAction.Get())
	assert.Empty(t, app.LastError.Get())
	// The refresh is fire-and-forget; wait for it to reach the adapter.
	require.Eventually(t, func() bool {
		return fake.listContainersCalls.Load() == 1
	}, 2*time.Second, 10*time.Millisecond, "successful start must dispatch a container refresh")
}

func TestStopContainerFailureDoesNotRefresh(t *testing.T) {
	existing := []docker.ContainerInfo{webContainer}
	fake := &fakeClient{
		stopFn: func(ctx context.Context, id string) error {
			return errors.New("no such container")
		},
	}
	app := New(fake, "")
	app.Containers.Set(existing)

	await(t, app.StopContainer("abc123"))

	assert.Equal(t, existing, app.Containers.Get())
	assert.Contains(t, app.LastError.Get(), "no such container")
	assert.Empty(t, app.LastAction.Get())
	assert.Equal(t, int32(0), fake.listContainersCalls.Load(), "failed stop must not dispatch a refresh")
}

func TestStopContainerRecordsAction(t *testing.T) {
	fake := &fakeClient{}
	app := New(fake, "")

	await(t, app.StopContainer("abc123"))

	assert.Equal(t, "Stopped container abc123", app.LastAction.Get())
	assert.Equal(t, int32(1), fake.stopCalls.Load())
}

func TestSetContainerStateRoutes(t *testing.T) {
	fake := &fakeClient{}
	app := New(fake, "")

	await(t, app.SetContainerState("abc123", docker.StateRunning))
	assert.Equal(t, int32(1), fake.startCalls.Load())
	assert.Equal(t, int32(0), fake.stopCalls.Load())

	await(t, app.SetContainerState("abc123", docker.StateStopped))
	assert.Equal(t, int32(1), fake.startCalls.Load())
	assert.Equal(t, int32(1), fake.stopCalls.Load())
}

func TestUniformFailureSurfacing(t *testing.T) {
	boom := errors.New("boom")
	ops := []struct {
		name string
		run  func(app *AppState) <-chan struct{}
	}{
		{"refresh containers", func(app *AppState) <-chan struct{} { return app.RefreshContainers() }},
		{"refresh images", func(app *AppState) <-chan struct{} { return app.RefreshImages() }},
		{"refresh volumes", func(app *AppState) <-chan struct{} { return app.RefreshVolumes() }},
		{"start container", func(app *AppState) <-chan struct{} { return app.StartContainer("abc123") }},
		{"stop container", func(app *AppState) <-chan struct{} { return app.StopContainer("abc123") }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			fake := &fakeClient{
				listContainersFn: func(ctx context.Context) ([]docker.ContainerInfo, error) { return nil, boom },
				listImagesFn:     func(ctx context.Context) ([]docker.ImageInfo, error) { return nil, boom },
				listVolumesFn:    func(ctx context.Context) ([]docker.VolumeInfo, error) { return nil, boom },
				startFn:          func(ctx context.Context, id string) error { return boom },
				stopFn:           func(ctx context.Context, id string) error { return boom },
			}
			app := New(fake, "")

			await(t, op.run(app))

			assert.NotEmpty(t, app.LastError.Get())
			assert.Contains(t, app.LastError.Get(), "boom")
			assert.False(t, app.Loading.Get())
		})
	}
}

func TestSuccessClearsLastError(t *testing.T) {
	fake := &fakeClient{
		listContainersFn: func(ctx context.Context) ([]docker.ContainerInfo, error) {
			return nil, errors.New("transient")
		},
	}
	app := New(fake, "")
	await(t, app.RefreshContainers())
	require.NotEmpty(t, app.LastError.Get())

	fake.listContainersFn = func(ctx context.Context) ([]docker.ContainerInfo, error) {
		return []docker.ContainerInfo{webContainer}, nil
	}
	await(t, app.RefreshContainers())

	assert.Empty(t, app.LastError.Get())
}

func TestNilClientSurfacesUnavailable(t *testing.T) {
	app := New(nil, "")
	require.False(t, app.Connected())

	ops := []func() <-chan struct{}{
		app.RefreshContainers,
		app.RefreshImages,
		app.RefreshVolumes,
		func() <-chan struct{} { return app.StartContainer("abc123") },
		func() <-chan struct{} { return app.StopContainer("abc123") },
		app.TestConnection,
	}
	for _, op := range ops {
		app.LastError.Set("")
		await(t, op())
		assert.Equal(t, ErrNoService, app.LastError.Get())
	}
	assert.Empty(t, app.Containers.Get())
	assert.False(t, app.Loading.Get())
}

func TestTestConnection(t *testing.T) {
	fake := &fakeClient{}
	app := New(fake, "")

	await(t, app.TestConnection())
	assert.Equal(t, "Docker connection OK", app.LastAction.Get())

	fake.pingFn = func(ctx context.Context) error { return errors.New("connection refused") }
	await(t, app.TestConnection())
	assert.Contains(t, app.LastError.Get(), "connection refused")
}

func TestSubscribeWakesOnAnyFieldChange(t *testing.T) {
	app := New(&fakeClient{}, "")
	ch := app.Subscribe()

	app.LastAction.Set("something happened")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("subscriber not woken by field change")
	}
}

func TestLastActionUntouchedByRefresh(t *testing.T) {
	fake := &fakeClient{}
	app := New(fake, "")
	app.RecordAction("Saved settings")

	await(t, app.RefreshContainers())

	assert.Equal(t, "Saved settings", app.LastAction.Get())
}
