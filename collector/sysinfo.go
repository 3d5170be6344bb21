package collector

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftahirops/xinfo/model"
)

// SysInfoCollector collects hostname, OS release and virtualization type once.
type SysInfoCollector struct {
	// Root is prepended to every file read; empty means "/".
	Root     string
	Hostname func() (string, error)

	once   sync.Once
	cached *model.HostInfo
}

func (s *SysInfoCollector) Name() string { return "sysinfo" }

func (s *SysInfoCollector) Collect(_ context.Context, snap *model.Snapshot) error {
	s.once.Do(func() {
		s.cached = s.collect()
	})
	snap.Host = s.cached
	return nil
}

func (s *SysInfoCollector) collect() *model.HostInfo {
	info := &model.HostInfo{}

	hostname := s.Hostname
	if hostname == nil {
		hostname = os.Hostname
	}
	info.Hostname, _ = hostname()

	info.OS = osPrettyName(s.path("/etc/os-release"))
	info.Kernel = s.readTrimmed("/proc/sys/kernel/osrelease")
	info.Virtualization = s.detectVirtualization()
	return info
}

func (s *SysInfoCollector) path(p string) string {
	if s.Root == "" {
		return p
	}
	return filepath.Join(s.Root, p)
}

func (s *SysInfoCollector) readTrimmed(p string) string {
	data, err := os.ReadFile(s.path(p))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// osPrettyName returns PRETTY_NAME from an os-release file.
func osPrettyName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if v, ok := strings.CutPrefix(sc.Text(), "PRETTY_NAME="); ok {
			return strings.Trim(v, `"'`)
		}
	}
	return ""
}

// detectVirtualization reports container, VM or bare metal.
func (s *SysInfoCollector) detectVirtualization() string {
	// 1. Container checks first
	if _, err := os.Stat(s.path("/.dockerenv")); err == nil {
		return "Container (Docker)"
	}
	if _, err := os.Stat(s.path("/run/.containerenv")); err == nil {
		return "Container (Podman)"
	}
	cgroup := s.readTrimmed("/proc/1/cgroup")
	if strings.Contains(cgroup, "/lxc/") {
		return "Container (LXC)"
	}

	// 2. DMI-based detection (sys_vendor + product_name)
	vendor := strings.ToLower(s.readTrimmed("/sys/class/dmi/id/sys_vendor"))
	product := strings.ToLower(s.readTrimmed("/sys/class/dmi/id/product_name"))

	switch {
	case strings.Contains(vendor, "vmware"):
		return "VM (VMware)"
	case strings.Contains(vendor, "qemu") || strings.Contains(product, "kvm"):
		return "VM (KVM)"
	case strings.Contains(vendor, "xen"):
		return "VM (Xen)"
	case strings.Contains(vendor, "microsoft") && strings.Contains(product, "virtual"):
		return "VM (Hyper-V)"
	case strings.Contains(vendor, "innotek") || strings.Contains(product, "virtualbox"):
		return "VM (VirtualBox)"
	case strings.Contains(vendor, "parallels"):
		return "VM (Parallels)"
	}

	// 3. Hypervisor flag in cpuinfo
	if strings.Contains(s.readTrimmed("/proc/cpuinfo"), "hypervisor") {
		return "VM (unknown)"
	}
	return "Bare Metal"
}
