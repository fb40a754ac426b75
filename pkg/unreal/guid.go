package unreal

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Guid is a 16-byte Unreal GUID stored as u32, u16, u16 and eight raw
// bytes, the integer parts in the session byte order.
type Guid struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

func (g *Guid) UnmarshalUnreal(d *Decoder) (err error) {
	if g.Data1, err = d.U32(); err != nil {
		return err
	}
	if g.Data2, err = d.U16(); err != nil {
		return err
	}
	if g.Data3, err = d.U16(); err != nil {
		return err
	}
	b, err := d.read(8)
	if err != nil {
		return err
	}
	copy(g.Data4[:], b)
	return nil
}

func (g *Guid) MarshalUnreal(e *Encoder) error {
	e.U32(g.Data1)
	e.U16(g.Data2)
	e.U16(g.Data3)
	e.Raw(g.Data4[:])
	return nil
}

// UUID returns the GUID in canonical field order.
func (g Guid) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:], g.Data4[:])
	return u
}

func (g Guid) String() string {
	return g.UUID().String()
}

func (g Guid) IsZero() bool {
	return g == Guid{}
}

// ParseGuid parses the textual form produced by String.
func ParseGuid(s string) (Guid, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Guid{}, err
	}
	var g Guid
	g.Data1 = binary.BigEndian.Uint32(u[0:4])
	g.Data2 = binary.BigEndian.Uint16(u[4:6])
	g.Data3 = binary.BigEndian.Uint16(u[6:8])
	copy(g.Data4[:], u[8:])
	return g, nil
}

// DecodeGuids reads a counted list of GUIDs.
func DecodeGuids(d *Decoder) ([]Guid, error) {
	return DecodeSeq(d, 16, DecodeStruct[Guid])
}

// EncodeGuids writes the list DecodeGuids reads.
func EncodeGuids(e *Encoder, s []Guid) error {
	return EncodeSlice(e, s)
}
