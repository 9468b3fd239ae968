package domain

// Studio identifies one of the bookable rooms. The set is closed.
type Studio string

const (
	Studio1 Studio = "studio1"
	Studio2 Studio = "studio2"
	Studio3 Studio = "studio3"
)

type StudioInfo struct {
	ID          Studio `json:"id"`
	DisplayName string `json:"display_name"`
}

var studios = []StudioInfo{
	{ID: Studio1, DisplayName: "Studio 1"},
	{ID: Studio2, DisplayName: "Studio 2"},
	{ID: Studio3, DisplayName: "Studio 3"},
}

// Studios returns the studio catalogue in display order.
func Studios() []StudioInfo {
	out := make([]StudioInfo, len(studios))
	copy(out, studios)
	return out
}

func (s Studio) Valid() bool {
	for _, info := range studios {
		if info.ID == s {
			return true
		}
	}
	return false
}

// DisplayName falls back to the raw identifier for unknown studios.
func (s Studio) DisplayName() string {
	for _, info := range studios {
		if info.ID == s {
			return info.DisplayName
		}
	}
	return string(s)
}
