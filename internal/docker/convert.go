package docker

import (
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/go-units"
)

const (
	noneTag     = "<none>"
	placeholder = "--"
)

func containerInfoFromSummary(c container.Summary) ContainerInfo {
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}
	return ContainerInfo{
		ID:     shortID(c.ID),
		Name:   name,
		Image:  c.Image,
		Status: c.Status,
		Ports:  formatPorts(c.Ports),
		State:  collapseState(string(c.State)),
	}
}

func imageInfoFromSummary(img image.Summary) ImageInfo {
	repo, tag := splitRepoTag(img.RepoTags)
	return ImageInfo{
		ID:         shortImageID(img.ID),
		Repository: repo,
		Tag:        tag,
		Size:       units.HumanSizeWithPrecision(float64(img.Size), 3),
	}
}

func volumeInfoFromVolume(v volume.Volume) VolumeInfo {
	return VolumeInfo{
		Name:       v.Name,
		Driver:     v.Driver,
		Mountpoint: v.Mountpoint,
		// Size would need a per-volume disk usage call, so it stays a
		// placeholder.
		Size: placeholder,
	}
}

// collapseState maps the daemon's container state to the two-state UI
// view. Only "running" counts as running.
func collapseState(state string) ContainerState {
	if state == "running" {
		return StateRunning
	}
	return StateStopped
}

// formatPorts renders port mappings as "host:container", one entry per
// published port, exposed-only ports as the bare container port.
func formatPorts(ports []container.Port) string {
	if len(ports) == 0 {
		return placeholder
	}
	seen := make(map[string]bool, len(ports))
	entries := make([]string, 0, len(ports))
	for _, p := range ports {
		var entry string
		if p.PublicPort != 0 {
			entry = fmt.Sprintf("%d:%d", p.PublicPort, p.PrivatePort)
		} else {
			entry = fmt.Sprintf("%d", p.PrivatePort)
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	return strings.Join(entries, ", ")
}

// splitRepoTag picks the first repo tag of an image. Untagged images get
// "<none>" for both halves, matching docker CLI output.
func splitRepoTag(repoTags []string) (string, string) {
	if len(repoTags) == 0 || repoTags[0] == "<none>:<none>" {
		return noneTag, noneTag
	}
	if idx := strings.LastIndex(repoTags[0], ":"); idx > 0 {
		return repoTags[0][:idx], repoTags[0][idx+1:]
	}
	return repoTags[0], noneTag
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func shortImageID(id string) string {
	return shortID(strings.TrimPrefix(id, "sha256:"))
}
