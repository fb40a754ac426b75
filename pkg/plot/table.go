package plot

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// MaxIndex bounds plot variable ids. The games use a few tens of
// thousands; setters ignore ids outside [0, MaxIndex) and getters report
// them as unset.
const MaxIndex = 1 << 20

func inRange(i int) bool { return i >= 0 && i < MaxIndex }

// Table is the plot table layout used by ME1 and ME2 and by the ME1 block
// carried inside ME2 and ME3 saves.
type Table struct {
	Booleans BoolVec
	Integers []int32
	Floats   []float32
}

func (t *Table) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = t.Booleans.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("booleans: %w", err)
	}
	if t.Integers, err = unreal.DecodeI32s(d); err != nil {
		return fmt.Errorf("integers: %w", err)
	}
	if t.Floats, err = unreal.DecodeF32s(d); err != nil {
		return fmt.Errorf("floats: %w", err)
	}
	return nil
}

func (t *Table) MarshalUnreal(e *unreal.Encoder) error {
	if err := t.Booleans.MarshalUnreal(e); err != nil {
		return fmt.Errorf("booleans: %w", err)
	}
	unreal.EncodeI32s(e, t.Integers)
	unreal.EncodeF32s(e, t.Floats)
	return nil
}

func (t *Table) Bool(i int) bool { return t.Booleans.Get(i) }

func (t *Table) SetBool(i int, v bool) { t.Booleans.Set(i, v) }

// Int returns integer i, or false when it is out of range.
func (t *Table) Int(i int) (int32, bool) {
	if i < 0 || i >= len(t.Integers) {
		return 0, false
	}
	return t.Integers[i], true
}

// SetInt assigns integer i, extending the table with zeros as needed.
func (t *Table) SetInt(i int, v int32) {
	if !inRange(i) {
		return
	}
	for len(t.Integers) <= i {
		t.Integers = append(t.Integers, 0)
	}
	t.Integers[i] = v
}

// Float returns the value at i and whether i is inside the float table.
func (t *Table) Float(i int) (float32, bool) {
	if i < 0 || i >= len(t.Floats) {
		return 0, false
	}
	return t.Floats[i], true
}

func (t *Table) SetFloat(i int, v float32) {
	if !inRange(i) {
		return
	}
	for len(t.Floats) <= i {
		t.Floats = append(t.Floats, 0)
	}
	t.Floats[i] = v
}

// MapTable is the ME3 plot table, whose integers and floats are sparse maps
// keyed by plot id.
type MapTable struct {
	Booleans BoolVec
	Integers *unreal.OrderedMap[int32, int32]
	Floats   *unreal.OrderedMap[int32, float32]
}

func (t *MapTable) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if err = t.Booleans.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("booleans: %w", err)
	}
	if t.Integers, err = unreal.DecodeMap(d, (*unreal.Decoder).I32, (*unreal.Decoder).I32); err != nil {
		return fmt.Errorf("integers: %w", err)
	}
	if t.Floats, err = unreal.DecodeMap(d, (*unreal.Decoder).I32, (*unreal.Decoder).F32); err != nil {
		return fmt.Errorf("floats: %w", err)
	}
	return nil
}

func (t *MapTable) MarshalUnreal(e *unreal.Encoder) error {
	if err := t.Booleans.MarshalUnreal(e); err != nil {
		return fmt.Errorf("booleans: %w", err)
	}
	if err := unreal.EncodeMap(e, t.Integers, unreal.PutI32, unreal.PutI32); err != nil {
		return err
	}
	return unreal.EncodeMap(e, t.Floats, unreal.PutI32, unreal.PutF32)
}

func (t *MapTable) Bool(i int) bool { return t.Booleans.Get(i) }

func (t *MapTable) SetBool(i int, v bool) { t.Booleans.Set(i, v) }

func (t *MapTable) Int(i int) (int32, bool) {
	if !inRange(i) {
		return 0, false
	}
	return t.Integers.Get(int32(i))
}

func (t *MapTable) SetInt(i int, v int32) {
	if !inRange(i) {
		return
	}
	if t.Integers == nil {
		t.Integers = unreal.NewOrderedMap[int32, int32]()
	}
	t.Integers.Set(int32(i), v)
}

func (t *MapTable) Float(i int) (float32, bool) {
	if !inRange(i) {
		return 0, false
	}
	return t.Floats.Get(int32(i))
}

func (t *MapTable) SetFloat(i int, v float32) {
	if !inRange(i) {
		return
	}
	if t.Floats == nil {
		t.Floats = unreal.NewOrderedMap[int32, float32]()
	}
	t.Floats.Set(int32(i), v)
}

// Variables is the indexed access shared by Table and MapTable.
type Variables interface {
	Bool(i int) bool
	SetBool(i int, v bool)
	Int(i int) (int32, bool)
	SetInt(i int, v int32)
	Float(i int) (float32, bool)
	SetFloat(i int, v float32)
}

var (
	_ Variables = (*Table)(nil)
	_ Variables = (*MapTable)(nil)
)
