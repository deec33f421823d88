package config

import "strings"

// Team is a league team and its roster.
type Team struct {
	// Name is the team's display name.
	Name string `yaml:"name"`

	// Players are the roster names as they appear on scorecards after cleaning.
	Players []string `yaml:"players"`
}

// HasPlayer reports whether name is on the roster, ignoring case.
func (t Team) HasPlayer(name string) bool {
	for _, p := range t.Players {
		if strings.EqualFold(strings.TrimSpace(p), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// File represents the structure of the .golfcard configuration file.
type File struct {
	// League is the league name shown in standings output.
	League string `yaml:"league,omitempty"`

	// Extraction overrides extraction defaults. Keys left out keep their defaults.
	Extraction Extraction `yaml:"extraction,omitempty"`

	// Teams are the league rosters used for standings.
	Teams []Team `yaml:"teams,omitempty"`
}

// NewFile returns a File with default extraction settings and no teams.
func NewFile() *File {
	return &File{Extraction: DefaultExtraction()}
}

// TeamFor returns the team whose roster contains name.
func (f *File) TeamFor(name string) (Team, bool) {
	for _, t := range f.Teams {
		if t.HasPlayer(name) {
			return t, true
		}
	}
	return Team{}, false
}
