package me1

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

const (
	classRecordSize  = 28
	objectRecordSize = 72
)

// PackageHeader is the summary at the start of player.sav. The offsets
// are absolute within the entry and are recomputed on encode.
type PackageHeader struct {
	Magic        uint32
	Version      unreal.Dummy
	DataOffset   uint32
	Name         string
	Flags        uint32
	NameCount    uint32
	NameOffset   uint32
	ObjectCount  uint32
	ObjectOffset uint32
	ClassCount   uint32
	ClassOffset  uint32
	GapOffset    uint32
	Unknown1     unreal.Dummy
	Compression  uint32
	Unknown2     unreal.Dummy
}

func (h *PackageHeader) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.Magic, err = d.U32(); err != nil {
		return err
	}
	if h.Version, err = d.ReadDummy(4); err != nil {
		return err
	}
	if h.DataOffset, err = d.U32(); err != nil {
		return err
	}
	if h.Name, err = d.Str(); err != nil {
		return fmt.Errorf("package name: %w", err)
	}
	for _, v := range h.fields() {
		if *v, err = d.U32(); err != nil {
			return err
		}
	}
	if h.Unknown1, err = d.ReadDummy(68); err != nil {
		return err
	}
	if h.Compression, err = d.U32(); err != nil {
		return err
	}
	h.Unknown2, err = d.ReadDummy(12)
	return err
}

func (h *PackageHeader) fields() []*uint32 {
	return []*uint32{
		&h.Flags, &h.NameCount, &h.NameOffset, &h.ObjectCount, &h.ObjectOffset,
		&h.ClassCount, &h.ClassOffset, &h.GapOffset,
	}
}

func (h *PackageHeader) MarshalUnreal(e *unreal.Encoder) error {
	e.U32(h.Magic)
	if len(h.Version) != 4 || len(h.Unknown1) != 68 || len(h.Unknown2) != 12 {
		return fmt.Errorf("package header: opaque fields have the wrong size")
	}
	h.Version.Put(e)
	e.U32(h.DataOffset)
	if err := e.Str(h.Name); err != nil {
		return fmt.Errorf("package name: %w", err)
	}
	for _, v := range h.fields() {
		e.U32(*v)
	}
	h.Unknown1.Put(e)
	e.U32(h.Compression)
	h.Unknown2.Put(e)
	return nil
}

// Name is an entry of the package name table.
type Name struct {
	Value string
	Flags uint64
}

func (n *Name) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if n.Value, err = d.Str(); err != nil {
		return err
	}
	n.Flags, err = d.U64()
	return err
}

func (n *Name) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(n.Value); err != nil {
		return err
	}
	e.U64(n.Flags)
	return nil
}

// Class is a 28-byte import record.
type Class struct {
	PackageID   uint32
	Unknown1    [4]byte
	BaseNameID  uint32
	Unknown2    [4]byte
	LinkID      uint32
	ClassNameID uint32
	Unknown3    [4]byte
}

// Object is a 72-byte export record. DataSize and DataOffset locate the
// object's serialized properties and are recomputed on encode.
type Object struct {
	ClassID       int32
	ClassParentID uint32
	LinkID        uint32
	NameID        uint32
	ValueID       uint32
	ArchetypeID   uint32
	Flags         uint64
	DataSize      uint32
	DataOffset    uint32
	Extra         [32]byte
}

// Package is the player.sav entry: an engine package whose name, import
// and export tables are decoded and whose object payloads are kept as raw
// bytes.
type Package struct {
	Prefix       unreal.Dummy
	HeaderOffset uint32
	Gap1         []byte
	Header       PackageHeader
	Names        []Name
	Classes      []Class
	Objects      []Object
	Gap2         []byte
	Data         [][]byte
	Trailer      []byte
}

func (p *Package) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if p.Prefix, err = d.ReadDummy(8); err != nil {
		return err
	}
	if p.HeaderOffset, err = d.U32(); err != nil {
		return err
	}
	if p.HeaderOffset < 12 {
		return d.Errorf(unreal.ErrVersionMismatch, "header offset %d", p.HeaderOffset)
	}
	if p.Gap1, err = d.Blob(p.HeaderOffset - 12); err != nil {
		return err
	}
	if err = p.Header.UnmarshalUnreal(d); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	h := &p.Header
	if p.Names, err = decodeRecords(d, h.NameCount, 9, unreal.DecodeStruct[Name]); err != nil {
		return fmt.Errorf("names: %w", err)
	}
	if p.Classes, err = decodeRecords(d, h.ClassCount, classRecordSize, decodeClass); err != nil {
		return fmt.Errorf("classes: %w", err)
	}
	if p.Objects, err = decodeRecords(d, h.ObjectCount, objectRecordSize, decodeObject); err != nil {
		return fmt.Errorf("objects: %w", err)
	}
	if h.DataOffset < h.GapOffset {
		return d.Errorf(unreal.ErrUnexpectedEOF, "data offset %d before table end %d", h.DataOffset, h.GapOffset)
	}
	if p.Gap2, err = d.Blob(h.DataOffset - h.GapOffset); err != nil {
		return err
	}
	p.Data = make([][]byte, len(p.Objects))
	for i, o := range p.Objects {
		if p.Data[i], err = d.Blob(o.DataSize); err != nil {
			return fmt.Errorf("object %d data: %w", i, err)
		}
	}
	p.Trailer = append([]byte(nil), d.Cursor().ReadToEnd()...)
	return nil
}

// decodeRecords reads count records whose count comes from the header
// rather than a length prefix.
func decodeRecords[T any](d *unreal.Decoder, count uint32, minSize int, dec func(*unreal.Decoder) (T, error)) ([]T, error) {
	if uint64(count)*uint64(minSize) > uint64(d.Cursor().Remaining()) {
		return nil, d.Errorf(unreal.ErrUnexpectedEOF, "%d records", count)
	}
	s := make([]T, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := dec(d)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		s = append(s, v)
	}
	return s, nil
}

func decodeClass(d *unreal.Decoder) (Class, error) {
	return unreal.DecodeFixed[Class](d, classRecordSize)
}

func decodeObject(d *unreal.Decoder) (Object, error) {
	return unreal.DecodeFixed[Object](d, objectRecordSize)
}

// layout returns the header and export table with every count and offset
// recomputed from the current contents.
func (p *Package) layout() (PackageHeader, []Object, error) {
	if len(p.Data) != len(p.Objects) {
		return PackageHeader{}, nil, fmt.Errorf("%d objects but %d data blocks", len(p.Objects), len(p.Data))
	}
	h := p.Header
	names := unreal.NewEncoder(nil)
	if err := unreal.EncodeSeq(names, p.Names, unreal.EncodeStruct[Name]); err != nil {
		return h, nil, err
	}
	h.NameCount = uint32(len(p.Names))
	h.ClassCount = uint32(len(p.Classes))
	h.ObjectCount = uint32(len(p.Objects))
	h.ClassOffset = h.NameOffset + uint32(names.Len()-4)
	h.ObjectOffset = h.ClassOffset + uint32(len(p.Classes)*classRecordSize)
	h.GapOffset = h.ObjectOffset + uint32(len(p.Objects)*objectRecordSize)
	h.DataOffset = h.GapOffset + uint32(len(p.Gap2))

	objects := append([]Object(nil), p.Objects...)
	off := h.DataOffset
	for i := range objects {
		objects[i].DataOffset = off
		objects[i].DataSize = uint32(len(p.Data[i]))
		off += objects[i].DataSize
	}
	return h, objects, nil
}

func (p *Package) MarshalUnreal(e *unreal.Encoder) error {
	h, objects, err := p.layout()
	if err != nil {
		return err
	}
	if len(p.Prefix) != 8 {
		return fmt.Errorf("package prefix is %d bytes, want 8", len(p.Prefix))
	}
	p.Prefix.Put(e)
	e.U32(uint32(12 + len(p.Gap1)))
	e.Raw(p.Gap1)
	if err := h.MarshalUnreal(e); err != nil {
		return err
	}
	for i := range p.Names {
		if err := p.Names[i].MarshalUnreal(e); err != nil {
			return fmt.Errorf("name %d: %w", i, err)
		}
	}
	for _, c := range p.Classes {
		if err := unreal.EncodeFixed(e, c); err != nil {
			return err
		}
	}
	for _, o := range objects {
		if err := unreal.EncodeFixed(e, o); err != nil {
			return err
		}
	}
	e.Raw(p.Gap2)
	for _, b := range p.Data {
		e.Raw(b)
	}
	e.Raw(p.Trailer)
	return nil
}

// NameAt returns entry id of the name table.
func (p *Package) NameAt(id uint32) (string, bool) {
	if int(id) >= len(p.Names) {
		return "", false
	}
	return p.Names[id].Value, true
}

// ObjectName returns the name of export i.
func (p *Package) ObjectName(i int) string {
	if i < 0 || i >= len(p.Objects) {
		return ""
	}
	name, _ := p.NameAt(p.Objects[i].NameID)
	return name
}

// ClassName resolves the class of export i through the import table.
// Negative class ids index imports; zero or positive ones are engine
// classes and yield "".
func (p *Package) ClassName(i int) string {
	if i < 0 || i >= len(p.Objects) {
		return ""
	}
	id := p.Objects[i].ClassID
	if id >= 0 || int(-id) > len(p.Classes) {
		return ""
	}
	name, _ := p.NameAt(p.Classes[-id-1].ClassNameID)
	return name
}
