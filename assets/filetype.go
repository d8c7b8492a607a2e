package assets

import "strings"

// FileType is one of the two file kinds the task knows how to minify.
type FileType int

const (
	JS FileType = iota + 1
	CSS
)

// FileTypes lists every recognized type in dispatch order.
var FileTypes = []FileType{JS, CSS}

// Suffix is the filename suffix that identifies the type.
func (t FileType) Suffix() string {
	switch t {
	case JS:
		return ".js"
	case CSS:
		return ".css"
	}
	return ""
}

// DefaultOutputSuffix replaces Suffix in output names unless configured otherwise.
func (t FileType) DefaultOutputSuffix() string {
	switch t {
	case JS:
		return "-min.js"
	case CSS:
		return "-min.css"
	}
	return ""
}

// MediaType is the mimetype the minify library registers the type under.
func (t FileType) MediaType() string {
	switch t {
	case JS:
		return "application/javascript"
	case CSS:
		return "text/css"
	}
	return ""
}

func (t FileType) String() string {
	switch t {
	case JS:
		return "JS"
	case CSS:
		return "CSS"
	}
	return "unknown"
}

// Classify maps a filename to its FileType by suffix. The match is case-sensitive;
// ok is false for anything that is neither JS nor CSS.
func Classify(name string) (FileType, bool) {
	for _, t := range FileTypes {
		if strings.HasSuffix(name, t.Suffix()) {
			return t, true
		}
	}
	return 0, false
}

// OutputName swaps the trailing recognized suffix of rel for newSuffix.
// Occurrences of the suffix elsewhere in the path are left alone.
func OutputName(rel string, t FileType, newSuffix string) string {
	if !strings.HasSuffix(rel, t.Suffix()) {
		return rel
	}
	return strings.TrimSuffix(rel, t.Suffix()) + newSuffix
}
