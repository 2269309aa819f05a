package domain

import "time"

// Marked is implemented by records carrying an optional point-in-time marker.
// An empty marker means "no marker".
type Marked interface {
	Marker() string
}

var markerLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

// ParseMarker parses an RFC 3339 timestamp (fractional seconds optional, Z or
// numeric offset). Seconds may be left out. A bare date is read as midnight UTC.
func ParseMarker(s string) (time.Time, bool) {
	for _, layout := range markerLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Newer reports whether marker a is strictly later than marker b.
// If either marker fails to parse the comparison is false.
func Newer(a, b string) bool {
	ta, ok := ParseMarker(a)
	if !ok {
		return false
	}
	tb, ok := ParseMarker(b)
	if !ok {
		return false
	}
	return ta.After(tb)
}

// MostRecentIndex returns the index of the element MostRecent would pick,
// or -1 when records is empty.
func MostRecentIndex[T Marked](records []T) int {
	if len(records) == 0 {
		return -1
	}

	best := 0
	for i := 1; i < len(records); i++ {
		cur := records[i].Marker()
		if cur == "" {
			continue
		}
		held := records[best].Marker()
		if held == "" || Newer(cur, held) {
			best = i
		}
	}
	return best
}

// MostRecent scans records left to right and returns a pointer to the element
// with the latest marker, or nil when records is empty.
//
// An element without a marker never replaces the current pick. A pick without
// a marker is replaced by the next element that has one. Otherwise an element
// wins only when its marker is strictly later; ties and unparseable markers
// keep the earlier element. The slice is never modified.
func MostRecent[T Marked](records []T) *T {
	i := MostRecentIndex(records)
	if i < 0 {
		return nil
	}
	return &records[i]
}
