package plot

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

type Quest struct {
	QuestCounter int32
	QuestUpdated bool
	History      []int32
}

func (q *Quest) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if q.QuestCounter, err = d.I32(); err != nil {
		return err
	}
	if q.QuestUpdated, err = d.Bool(); err != nil {
		return err
	}
	q.History, err = unreal.DecodeI32s(d)
	return err
}

func (q *Quest) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(q.QuestCounter)
	e.Bool(q.QuestUpdated)
	unreal.EncodeI32s(e, q.History)
	return nil
}

// GoalQuest is the ME3 quest record, which tracks the active goal.
type GoalQuest struct {
	QuestCounter int32
	QuestUpdated bool
	ActiveGoal   int32
	History      []int32
}

func (q *GoalQuest) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if q.QuestCounter, err = d.I32(); err != nil {
		return err
	}
	if q.QuestUpdated, err = d.Bool(); err != nil {
		return err
	}
	if q.ActiveGoal, err = d.I32(); err != nil {
		return err
	}
	q.History, err = unreal.DecodeI32s(d)
	return err
}

func (q *GoalQuest) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(q.QuestCounter)
	e.Bool(q.QuestUpdated)
	e.I32(q.ActiveGoal)
	unreal.EncodeI32s(e, q.History)
	return nil
}

// Journal is the quest log: a progress counter, the quest records and the
// ids of the quests they belong to.
type Journal[Q any, PQ unreal.Pointer[Q]] struct {
	QuestProgressCounter int32
	QuestProgress        []Q
	QuestIDs             []int32
}

func (j *Journal[Q, PQ]) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if j.QuestProgressCounter, err = d.I32(); err != nil {
		return fmt.Errorf("quest counter: %w", err)
	}
	if j.QuestProgress, err = unreal.DecodeSlice[Q, PQ](d); err != nil {
		return fmt.Errorf("quest progress: %w", err)
	}
	if j.QuestIDs, err = unreal.DecodeI32s(d); err != nil {
		return fmt.Errorf("quest ids: %w", err)
	}
	return nil
}

func (j *Journal[Q, PQ]) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(j.QuestProgressCounter)
	if err := unreal.EncodeSlice[Q, PQ](e, j.QuestProgress); err != nil {
		return fmt.Errorf("quest progress: %w", err)
	}
	unreal.EncodeI32s(e, j.QuestIDs)
	return nil
}

type CodexPage struct {
	Page  int32
	IsNew bool
}

func (p *CodexPage) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.Page, err = d.I32(); err != nil {
		return err
	}
	p.IsNew, err = d.Bool()
	return err
}

func (p *CodexPage) MarshalUnreal(e *unreal.Encoder) error {
	e.I32(p.Page)
	e.Bool(p.IsNew)
	return nil
}

type CodexEntry struct {
	Pages []CodexPage
}

func (c *CodexEntry) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	c.Pages, err = unreal.DecodeSlice[CodexPage](d)
	return err
}

func (c *CodexEntry) MarshalUnreal(e *unreal.Encoder) error {
	return unreal.EncodeSlice(e, c.Pages)
}

type Codex struct {
	Entries []CodexEntry
	IDs     []int32
}

func (c *Codex) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if c.Entries, err = unreal.DecodeSlice[CodexEntry](d); err != nil {
		return fmt.Errorf("codex entries: %w", err)
	}
	if c.IDs, err = unreal.DecodeI32s(d); err != nil {
		return fmt.Errorf("codex ids: %w", err)
	}
	return nil
}

func (c *Codex) MarshalUnreal(e *unreal.Encoder) error {
	if err := unreal.EncodeSlice(e, c.Entries); err != nil {
		return err
	}
	unreal.EncodeI32s(e, c.IDs)
	return nil
}

// QuestJournal is the journal layout of ME1 and ME2.
type QuestJournal = Journal[Quest, *Quest]

// GoalJournal is the ME3 journal layout.
type GoalJournal = Journal[GoalQuest, *GoalQuest]
