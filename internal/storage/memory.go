package storage

// Memory is an in-process Adapter used by tests and ephemeral runs.
// It enforces the same byte budget as the durable adapter so quota
// behavior can be exercised without a database file.
type Memory struct {
	data  map[string]string
	quota int
	used  int
}

// NewMemory creates an empty in-memory adapter with the default quota.
func NewMemory() *Memory {
	return NewMemoryWithQuota(DefaultQuota)
}

// NewMemoryWithQuota creates an in-memory adapter with an explicit byte
// budget. A non-positive quota disables the budget entirely.
func NewMemoryWithQuota(quota int) *Memory {
	return &Memory{
		data:  make(map[string]string),
		quota: quota,
	}
}

// Get returns the value for key.
func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Set stores value under key, or returns ErrQuotaExceeded leaving the
// previous value in place.
func (m *Memory) Set(key, value string) error {
	next := m.used + len(key) + len(value)
	if prev, ok := m.data[key]; ok {
		next -= len(key) + len(prev)
	}
	if m.quota > 0 && next > m.quota {
		return ErrQuotaExceeded
	}
	m.data[key] = value
	m.used = next
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(key string) {
	if prev, ok := m.data[key]; ok {
		m.used -= len(key) + len(prev)
		delete(m.data, key)
	}
}

// Keys returns all present keys.
func (m *Memory) Keys() []string {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
