package domain

// Configuration keys understood by the settings service.
const (
	SettingDefaultSort      = "list.default_sort"
	SettingDefaultAscending = "list.default_ascending"
	SettingExpandComments   = "list.expand_comments"
	SettingDataDir          = "storage.data_dir"
)

// ListSettings holds the defaults a fresh document list starts from.
type ListSettings struct {
	// DefaultSort is the sort applied when no state was saved.
	DefaultSort Sort

	// ExpandComments starts the list with every comment row listed.
	ExpandComments bool
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// DataDir is the directory of the SQLite database.
	// Empty means ~/.reader/data.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// List holds document list defaults.
	List ListSettings

	// Storage holds persistence settings.
	Storage StorageSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		List: ListSettings{
			DefaultSort: DefaultSort(),
		},
	}
}

// InitialListState builds the list state of a case that has no saved view
// state.
func (s AppSettings) InitialListState() ListState {
	state := NewListState()
	if s.List.DefaultSort.SortBy.IsValid() {
		state.Criteria.Sort = s.List.DefaultSort
	}
	state.ExpandAll = s.List.ExpandComments
	return state
}
