package listview

import "strings"

// OverlayParam is the query parameter that opens the create-list overlay.
// Other screens link to "<base>?new_cohort=true" to land in the create flow.
const OverlayParam = "new_cohort"

// DefaultBasePath is the address of the list view.
const DefaultBasePath = "/home/patient-lists"

// Location exposes the current navigable address and its changes.
type Location interface {
	Current() string
	Subscribe(fn func(address string)) (unsubscribe func())
}

// Navigator requests a move to a new address.
type Navigator interface {
	Navigate(address string)
}

// IsOverlayOpen reports whether address carries new_cohort=true. The match
// is exact and case-sensitive; values are not percent-decoded. A missing,
// empty or malformed parameter means closed.
func IsOverlayOpen(address string) bool {
	value, ok := queryParam(address, OverlayParam)
	return ok && value == "true"
}

// OpenAddress returns the address that shows the overlay over basePath.
func OpenAddress(basePath string) string {
	return basePathOf(basePath) + "?" + OverlayParam + "=true"
}

// CloseAddress returns basePath with the query string cleared.
func CloseAddress(basePath string) string {
	return basePathOf(basePath)
}

// queryParam splits the query on '&' and each pair on '='. A later
// occurrence of name wins; a pair without '=' counts as unset.
func queryParam(address, name string) (string, bool) {
	_, query, ok := strings.Cut(address, "?")
	if !ok {
		return "", false
	}
	query, _, _ = strings.Cut(query, "#")

	var value string
	found := false
	for _, pair := range strings.Split(query, "&") {
		parts := strings.Split(pair, "=")
		if parts[0] != name {
			continue
		}
		if len(parts) < 2 {
			value, found = "", false
			continue
		}
		value, found = parts[1], true
	}
	return value, found
}

func basePathOf(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultBasePath
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return path
}

// OverlaySync derives the overlay state from a Location and rewrites the
// address to change it. It holds no open/closed flag of its own.
type OverlaySync struct {
	location  Location
	navigator Navigator
	basePath  string
}

// NewOverlaySync binds the overlay to loc and nav.
func NewOverlaySync(loc Location, nav Navigator, basePath string) OverlaySync {
	return OverlaySync{location: loc, navigator: nav, basePath: basePathOf(basePath)}
}

// IsOpen re-reads the current address.
func (o OverlaySync) IsOpen() bool {
	if o.location == nil {
		return false
	}
	return IsOverlayOpen(o.location.Current())
}

// Open navigates to the base path with new_cohort=true.
func (o OverlaySync) Open() {
	if o.navigator != nil {
		o.navigator.Navigate(OpenAddress(o.basePath))
	}
}

// Close navigates to the bare base path.
func (o OverlaySync) Close() {
	if o.navigator != nil {
		o.navigator.Navigate(CloseAddress(o.basePath))
	}
}
