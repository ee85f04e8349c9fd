package model

// LoadState represents the state of a screen's data fetch
type LoadState string

const (
	// LoadStateIdle means nothing has been requested yet
	LoadStateIdle LoadState = "Idle"

	// LoadStateLoading means a request is in flight
	LoadStateLoading LoadState = "Loading"

	// LoadStateLoaded means the last request succeeded
	LoadStateLoaded LoadState = "Loaded"

	// LoadStateFailed means the last request failed
	LoadStateFailed LoadState = "Failed"
)

// String returns the string representation of LoadState
func (ls LoadState) String() string {
	return string(ls)
}

// IsActive returns true while a request is in flight
func (ls LoadState) IsActive() bool {
	return ls == LoadStateLoading
}

// IsFinished returns true if the last request completed, successfully or not
func (ls LoadState) IsFinished() bool {
	return ls == LoadStateLoaded || ls == LoadStateFailed
}
