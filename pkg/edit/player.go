package edit

import (
	"strconv"

	"github.com/goopsie/trilogySaveTools/pkg/save"
)

// player points at the commonly edited fields of a format's player record.
type player struct {
	name         *string
	female       *bool
	level        *int32
	xp           *float32
	credits      *int32
	medigel      *int32
	talentPoints *int32
}

func playerOf(s *save.Save) (*player, error) {
	switch s.Format {
	case save.ME1LE, save.ME1LEPS4:
		d := s.ME1LEPS4
		if s.Format == save.ME1LE {
			d = &s.ME1LE.Data
		}
		p := &d.Player
		return &player{&p.FirstName, &p.IsFemale, &p.Level, &p.CurrentXP, &p.Credits, &p.Medigel, &p.TalentPoints}, nil
	case save.ME2, save.ME2LE:
		g := s.ME2
		if s.Format == save.ME2LE {
			g = s.ME2LE
		}
		p := &g.Player
		return &player{&p.FirstName, &p.IsFemale, &p.Level, &p.CurrentXP, &p.Credits, &p.Medigel, &p.TalentPoints}, nil
	case save.ME3:
		p := &s.ME3.Player
		return &player{&p.FirstName, &p.IsFemale, &p.Level, &p.CurrentXP, &p.Credits, &p.Medigel, &p.TalentPoints}, nil
	}
	return nil, ErrNotAvailable
}

func (p *player) ints() map[string]*int32 {
	return map[string]*int32{
		"level":         p.level,
		"credits":       p.credits,
		"medigel":       p.medigel,
		"talent_points": p.talentPoints,
	}
}

func (p *player) set(field, value string) error {
	if v, ok := p.ints()[field]; ok {
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		*v = int32(n)
		return nil
	}
	switch field {
	case "name":
		*p.name = value
	case "female":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*p.female = b
	case "xp":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return err
		}
		*p.xp = float32(f)
	default:
		return ErrUnknownLabel
	}
	return nil
}

func (p *player) get(field string) (string, error) {
	if v, ok := p.ints()[field]; ok {
		return strconv.FormatInt(int64(*v), 10), nil
	}
	switch field {
	case "name":
		return *p.name, nil
	case "female":
		return strconv.FormatBool(*p.female), nil
	case "xp":
		return strconv.FormatFloat(float64(*p.xp), 'g', -1, 32), nil
	}
	return "", ErrUnknownLabel
}
