// Package docker wraps the Docker Engine API behind the small surface the
// rest of the app needs: list containers/images/volumes, start and stop.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
)

// Client is the engine-facing interface. Tests substitute a fake.
type Client interface {
	ListContainers(ctx context.Context) ([]ContainerInfo, error)
	ListImages(ctx context.Context) ([]ImageInfo, error)
	ListVolumes(ctx context.Context) ([]VolumeInfo, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

var _ Client = (*Service)(nil)

// Service implements Client using the Docker Engine API.
type Service struct {
	cli *client.Client
}

// NewService connects to the Docker daemon. An empty host falls back to
// the environment (DOCKER_HOST or the default socket).
func NewService(host string) (*Service, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	} else {
		opts = append(opts, client.FromEnv)
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return &Service{cli: cli}, nil
}

// ListContainers returns all containers, running or not, in the order the
// daemon reports them.
func (s *Service) ListContainers(ctx context.Context) ([]ContainerInfo, error) {
	containers, err := s.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	out := make([]ContainerInfo, 0, len(containers))
	for _, c := range containers {
		out = append(out, containerInfoFromSummary(c))
	}
	return out, nil
}

// ListImages returns the local image cache.
func (s *Service) ListImages(ctx context.Context) ([]ImageInfo, error) {
	images, err := s.cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	out := make([]ImageInfo, 0, len(images))
	for _, img := range images {
		out = append(out, imageInfoFromSummary(img))
	}
	return out, nil
}

// ListVolumes returns all volumes known to the daemon.
func (s *Service) ListVolumes(ctx context.Context) ([]VolumeInfo, error) {
	resp, err := s.cli.VolumeList(ctx, volume.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}
	out := make([]VolumeInfo, 0, len(resp.Volumes))
	for _, v := range resp.Volumes {
		if v == nil {
			continue
		}
		out = append(out, volumeInfoFromVolume(*v))
	}
	return out, nil
}

// StartContainer starts a container by ID. Starting an already-running
// container is the daemon's call to reject; its error comes back verbatim.
func (s *Service) StartContainer(ctx context.Context, id string) error {
	if err := s.cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return fmt.Errorf("start container %s: %w", id, err)
	}
	return nil
}

// StopContainer stops a container by ID with the daemon's default grace
// period.
func (s *Service) StopContainer(ctx context.Context, id string) error {
	if err := s.cli.ContainerStop(ctx, id, container.StopOptions{}); err != nil {
		return fmt.Errorf("stop container %s: %w", id, err)
	}
	return nil
}

// Ping checks that the daemon is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if _, err := s.cli.Ping(ctx); err != nil {
		return fmt.Errorf("ping docker daemon: %w", err)
	}
	return nil
}

// Close releases the underlying HTTP client.
func (s *Service) Close() error {
	return s.cli.Close()
}
