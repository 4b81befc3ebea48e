// Package storage abstracts where the flat-file catalogue documents and
// product images live. Two drivers: the local filesystem (default) and
// S3-compatible object storage (AWS S3, MinIO, R2, Spaces).
package storage

import "fmt"

// Disk is a flat key/value document store addressed by slash paths.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error
	// Get returns the content stored at path.
	Get(path string) ([]byte, error)
	// Exists reports whether path holds content.
	Exists(path string) bool
	// URL returns the public URL for path.
	URL(path string) string
	// Delete removes path; an absent path is not an error.
	Delete(path string) error
}

// Options configures the drivers.
type Options struct {
	Default   string // "local" or "s3"
	LocalRoot string
	LocalURL  string

	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
	S3URL      string
}

// Manager holds the configured disks.
type Manager struct {
	disks       map[string]Disk
	defaultDisk string
}

// NewManager boots the storage drivers. The local disk is always
// available; the s3 disk only when a bucket is configured.
func NewManager(opts Options) (*Manager, error) {
	m := &Manager{
		disks:       map[string]Disk{"local": newLocalDisk(opts)},
		defaultDisk: opts.Default,
	}
	if m.defaultDisk == "" {
		m.defaultDisk = "local"
	}

	if opts.S3Bucket != "" {
		d, err := newS3Disk(opts)
		if err != nil {
			return nil, err
		}
		m.disks["s3"] = d
	}

	if _, ok := m.disks[m.defaultDisk]; !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultDisk)
	}
	return m, nil
}

// Disk returns the named driver, or the default one for an empty name.
func (m *Manager) Disk(name string) (Disk, error) {
	if name == "" {
		name = m.defaultDisk
	}
	d, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the default driver.
func (m *Manager) Default() Disk {
	d, _ := m.Disk(m.defaultDisk)
	return d
}
