package driven

// ConfigStore holds the user's settings as flat dot-separated keys
// ("list.default_sort"). Typed getters return the zero value when a key
// is missing or holds another type; use Get to tell the two apart.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetBool(key string) bool

	// Set stores one value and persists it.
	Set(key string, value any) error

	// SetAll stores every value and persists them in a single write, so a
	// failed save never leaves half of the settings updated.
	SetAll(values map[string]any) error

	// Path returns where the settings are persisted, or "" for stores
	// that keep them in memory.
	Path() string
}
