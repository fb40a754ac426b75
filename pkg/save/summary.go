package save

import (
	"time"

	"github.com/goopsie/trilogySaveTools/pkg/save/me1le"
	"github.com/goopsie/trilogySaveTools/pkg/save/me2"
)

// Summary is the headline information of a save, as shown by listings.
// Fields a format does not store are left empty.
type Summary struct {
	Format     Format
	Xbox360    bool
	Name       string
	Female     bool
	Level      int32
	Map        string
	Difficulty string
	Played     time.Duration
	SavedAt    string
	Export     bool
}

// Summary collects the header fields of whichever game s holds. A save
// without game data yields only its format.
func (s *Save) Summary() Summary {
	sum := Summary{Format: s.Format, Xbox360: s.Xbox360()}
	if s.Validate() != nil {
		return sum
	}
	switch s.Format {
	case ME1:
		sum.Map = s.ME1.State.BaseLevelName
		sum.Export = s.ME1.IsExport()
	case ME1LE:
		summarizeME1LE(&sum, &s.ME1LE.Data)
	case ME1LEPS4:
		summarizeME1LE(&sum, s.ME1LEPS4)
	case ME2:
		summarizeME2(&sum, s.ME2)
	case ME2LE:
		summarizeME2(&sum, s.ME2LE)
	case ME3:
		g := s.ME3
		sum.Name = g.Player.FirstName
		sum.Female = g.Player.IsFemale
		sum.Level = g.Player.Level
		sum.Map = g.BaseLevelName
		sum.Difficulty = g.Difficulty.String()
		sum.Played = seconds(float64(g.SecondsPlayed))
		sum.SavedAt = g.Timestamp.String()
	}
	return sum
}

func summarizeME1LE(sum *Summary, d *me1le.SaveData) {
	sum.Name = d.Player.FirstName
	sum.Female = d.Player.IsFemale
	sum.Level = d.Player.Level
	sum.Map = d.BaseLevelName
	sum.Played = seconds(float64(d.SecondsPlayed))
	sum.SavedAt = d.Timestamp.String()
	sum.Export = d.IsExport()
}

func summarizeME2(sum *Summary, g *me2.SaveGame) {
	sum.Name = g.Player.FirstName
	sum.Female = g.Player.IsFemale
	sum.Level = g.Player.Level
	sum.Map = g.BaseLevelName
	sum.Difficulty = g.Difficulty.String()
	sum.Played = seconds(float64(g.SecondsPlayed))
	sum.SavedAt = g.Timestamp.String()
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Second)
}
