package enums

import "fmt"

// StoreSource tags which backend served a quote store request.
type StoreSource string

const (
	StoreSourceRemote StoreSource = "remote"
	StoreSourceLocal  StoreSource = "local"
)

var validStoreSources = []StoreSource{
	StoreSourceRemote,
	StoreSourceLocal,
}

// String implements fmt.Stringer.
func (s StoreSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StoreSource.
func (s StoreSource) IsValid() bool {
	for _, candidate := range validStoreSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStoreSource converts raw input into a StoreSource.
func ParseStoreSource(value string) (StoreSource, error) {
	for _, candidate := range validStoreSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store source %q", value)
}
