package device

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultPort is the device's remote-control port.
const DefaultPort = "8060"

// Registry resolves device identifiers to base URLs. Built once from
// configuration; read-only afterwards.
type Registry struct {
	devices   map[string]string // id -> host[:port]
	defaultID string
}

// NewRegistry builds a device registry from configured addresses.
func NewRegistry(devices map[string]string, defaultID string) *Registry {
	copied := make(map[string]string, len(devices))
	for id, addr := range devices {
		copied[id] = addr
	}
	return &Registry{devices: copied, defaultID: defaultID}
}

// Resolve maps a device id to its base URL, returning the resolved id as
// well so callers asking for the default device learn which one answered.
func (r *Registry) Resolve(id string) (string, string, error) {
	if id == "" {
		if r.defaultID == "" {
			return "", "", fmt.Errorf("no device specified and no default device configured")
		}
		id = r.defaultID
	}

	addr, ok := r.devices[id]
	if !ok {
		return "", "", fmt.Errorf("unknown device %q", id)
	}

	if !strings.Contains(addr, ":") {
		addr += ":" + DefaultPort
	}
	return id, "http://" + addr, nil
}

// IDs returns the configured device ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.devices))
	for id := range r.devices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
