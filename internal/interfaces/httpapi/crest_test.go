package httpapi

import (
	"strings"
	"testing"

	"github.com/survivorleague/survivor-api/internal/domain/team"
)

func TestTeamCrestDataURI(t *testing.T) {
	uri := teamCrestDataURI(team.Team{ID: "team-1", Name: "Liverpool", ShortName: "LIV", CrestColor: "#c8102e"})
	if !strings.HasPrefix(uri, "data:image/svg+xml;base64,") {
		t.Fatalf("expected SVG data URI, got %q", uri)
	}
}

func TestCrestInitials(t *testing.T) {
	tests := []struct {
		name string
		team team.Team
		want string
	}{
		{name: "short name wins", team: team.Team{Name: "Liverpool", ShortName: "liv"}, want: "LIV"},
		{name: "short name truncated", team: team.Team{ShortName: "wolves"}, want: "WOL"},
		{name: "falls back to name words", team: team.Team{Name: "West Ham United"}, want: "WHU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := crestInitials(tt.team); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
