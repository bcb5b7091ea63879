package model

import (
	"strings"
	"testing"
)

func TestNewEventID_HasPrefixAndLength(t *testing.T) {
	t.Parallel()

	id := NewEventID()

	if !strings.HasPrefix(id, EventIDPrefix) {
		t.Errorf("expected prefix %q, got %q", EventIDPrefix, id)
	}
	if len(id) != len(EventIDPrefix)+10 {
		t.Errorf("expected %d characters, got %d (%q)", len(EventIDPrefix)+10, len(id), id)
	}
}

func TestNewEventID_Varies(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewEventID()
		if seen[id] {
			t.Fatalf("duplicate event ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestValidServiceType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{ServiceTypeBoth, true},
		{ServiceTypeViewAlbum, true},
		{ServiceTypeUploadPics, true},
		{"", false},
		{"Both", false},
		{"album", false},
	}

	for _, tt := range tests {
		if got := ValidServiceType(tt.input); got != tt.expected {
			t.Errorf("ValidServiceType(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestEvent_AllowsUploads(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      string
		serviceType string
		expected    bool
	}{
		{"active_both", EventStatusActive, ServiceTypeBoth, true},
		{"active_uploadpics", EventStatusActive, ServiceTypeUploadPics, true},
		{"active_viewalbum", EventStatusActive, ServiceTypeViewAlbum, false},
		{"disabled_both", EventStatusDisabled, ServiceTypeBoth, false},
		{"disabled_viewalbum", EventStatusDisabled, ServiceTypeViewAlbum, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := &Event{Status: tt.status, ServiceType: tt.serviceType}
			if got := e.AllowsUploads(); got != tt.expected {
				t.Errorf("AllowsUploads() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPreloadedPhotosState_Remaining(t *testing.T) {
	t.Parallel()

	st := PreloadedPhotosState{ExpectedCount: 3}
	if st.Remaining() != 3 {
		t.Errorf("expected 3 remaining, got %d", st.Remaining())
	}

	st.Photos = append(st.Photos, MediaRef{MediaID: "m1"}, MediaRef{MediaID: "m2"})
	if st.Remaining() != 1 {
		t.Errorf("expected 1 remaining, got %d", st.Remaining())
	}

	st.Photos = append(st.Photos, MediaRef{MediaID: "m3"})
	if st.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", st.Remaining())
	}
}

func TestSessionStates_ReportTheirStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state SessionState
		step  Step
	}{
		{WelcomeTextState{}, StepWelcomeText},
		{DescriptionState{}, StepDescription},
		{BackgroundImageState{}, StepBackgroundImage},
		{ServiceTypeState{}, StepServiceType},
		{UploadLimitState{}, StepUploadLimit},
		{ExpectedCountState{}, StepExpectedCount},
		{PreloadedPhotosState{}, StepPreloadedPhotos},
		{DisableEventIDState{}, StepDisableEventID},
	}

	for _, tt := range tests {
		if got := tt.state.Step(); got != tt.step {
			t.Errorf("%T.Step() = %q, want %q", tt.state, got, tt.step)
		}
	}
}
