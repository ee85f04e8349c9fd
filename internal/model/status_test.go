package model

import "testing"

func TestLoadState_IsActive(t *testing.T) {
	tests := []struct {
		state    LoadState
		expected bool
	}{
		{LoadStateIdle, false},
		{LoadStateLoading, true},
		{LoadStateLoaded, false},
		{LoadStateFailed, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("LoadState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestLoadState_IsFinished(t *testing.T) {
	tests := []struct {
		state    LoadState
		expected bool
	}{
		{LoadStateIdle, false},
		{LoadStateLoading, false},
		{LoadStateLoaded, true},
		{LoadStateFailed, true},
	}

	for _, test := range tests {
		result := test.state.IsFinished()
		if result != test.expected {
			t.Errorf("LoadState(%s).IsFinished() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestLoadState_String(t *testing.T) {
	if LoadStateLoading.String() != "Loading" {
		t.Errorf("LoadState.String() = %s, expected Loading", LoadStateLoading.String())
	}
}
