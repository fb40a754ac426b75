// Package headmorph exchanges head morphs between saves as YAML documents.
// Map-like sections are written as lists so that entry order, and with it
// the encoded save, survives an export/import round trip.
package headmorph

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goopsie/trilogySaveTools/pkg/save"
	"github.com/goopsie/trilogySaveTools/pkg/save/shared"
	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// ErrNoHeadMorph is returned when a save has no custom face.
var ErrNoHeadMorph = errors.New("save has no head morph")

type Scalar struct {
	Name  string  `yaml:"name"`
	Value float32 `yaml:"value"`
}

type Bone struct {
	Name   string     `yaml:"name"`
	Offset [3]float32 `yaml:"offset,flow"`
}

type Color struct {
	Name  string     `yaml:"name"`
	Value [4]float32 `yaml:"rgba,flow"`
}

type Texture struct {
	Name  string `yaml:"name"`
	Value string `yaml:"texture"`
}

// Document is the YAML form of a head morph.
type Document struct {
	Game              string       `yaml:"game,omitempty"`
	HairMesh          string       `yaml:"hair_mesh"`
	AccessoryMesh     []string     `yaml:"accessory_mesh"`
	MorphFeatures     []Scalar     `yaml:"morph_features"`
	OffsetBones       []Bone       `yaml:"offset_bones"`
	Lod0Vertices      [][3]float32 `yaml:"lod0_vertices"`
	Lod1Vertices      [][3]float32 `yaml:"lod1_vertices"`
	Lod2Vertices      [][3]float32 `yaml:"lod2_vertices"`
	Lod3Vertices      [][3]float32 `yaml:"lod3_vertices"`
	ScalarParameters  []Scalar     `yaml:"scalar_parameters"`
	VectorParameters  []Color      `yaml:"vector_parameters"`
	TextureParameters []Texture    `yaml:"texture_parameters"`
}

func vec(v shared.Vector) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func unvec(v [3]float32) shared.Vector { return shared.Vector{X: v[0], Y: v[1], Z: v[2]} }

func vectors(in []shared.Vector) [][3]float32 {
	out := make([][3]float32, len(in))
	for i, v := range in {
		out[i] = vec(v)
	}
	return out
}

func unvectors(in [][3]float32) []shared.Vector {
	out := make([]shared.Vector, len(in))
	for i, v := range in {
		out[i] = unvec(v)
	}
	return out
}

// FromHeadMorph converts h to its document form.
func FromHeadMorph(h *shared.HeadMorph) *Document {
	doc := &Document{
		HairMesh:      h.HairMesh,
		AccessoryMesh: append([]string{}, h.AccessoryMesh...),
		Lod0Vertices:  vectors(h.Lod0Vertices),
		Lod1Vertices:  vectors(h.Lod1Vertices),
		Lod2Vertices:  vectors(h.Lod2Vertices),
		Lod3Vertices:  vectors(h.Lod3Vertices),
	}
	for _, p := range h.MorphFeatures.Pairs() {
		doc.MorphFeatures = append(doc.MorphFeatures, Scalar{p.Key, p.Value})
	}
	for _, p := range h.OffsetBones.Pairs() {
		doc.OffsetBones = append(doc.OffsetBones, Bone{p.Key, vec(p.Value)})
	}
	for _, p := range h.ScalarParameters.Pairs() {
		doc.ScalarParameters = append(doc.ScalarParameters, Scalar{p.Key, p.Value})
	}
	for _, p := range h.VectorParameters.Pairs() {
		c := p.Value
		doc.VectorParameters = append(doc.VectorParameters, Color{p.Key, [4]float32{c.R, c.G, c.B, c.A}})
	}
	for _, p := range h.TextureParameters.Pairs() {
		doc.TextureParameters = append(doc.TextureParameters, Texture{p.Key, p.Value})
	}
	return doc
}

// HeadMorph converts the document back to the save representation.
func (doc *Document) HeadMorph() *shared.HeadMorph {
	h := &shared.HeadMorph{
		HairMesh:      doc.HairMesh,
		AccessoryMesh: append([]string{}, doc.AccessoryMesh...),
		Lod0Vertices:  unvectors(doc.Lod0Vertices),
		Lod1Vertices:  unvectors(doc.Lod1Vertices),
		Lod2Vertices:  unvectors(doc.Lod2Vertices),
		Lod3Vertices:  unvectors(doc.Lod3Vertices),
	}
	var (
		features, scalars []unreal.Pair[string, float32]
		bones             []unreal.Pair[string, shared.Vector]
		colors            []unreal.Pair[string, shared.LinearColor]
		textures          []unreal.Pair[string, string]
	)
	for _, s := range doc.MorphFeatures {
		features = append(features, unreal.Pair[string, float32]{Key: s.Name, Value: s.Value})
	}
	for _, b := range doc.OffsetBones {
		bones = append(bones, unreal.Pair[string, shared.Vector]{Key: b.Name, Value: unvec(b.Offset)})
	}
	for _, s := range doc.ScalarParameters {
		scalars = append(scalars, unreal.Pair[string, float32]{Key: s.Name, Value: s.Value})
	}
	for _, c := range doc.VectorParameters {
		v := c.Value
		colors = append(colors, unreal.Pair[string, shared.LinearColor]{Key: c.Name, Value: shared.LinearColor{R: v[0], G: v[1], B: v[2], A: v[3]}})
	}
	for _, t := range doc.TextureParameters {
		textures = append(textures, unreal.Pair[string, string]{Key: t.Name, Value: t.Value})
	}
	h.MorphFeatures = unreal.MapFromPairs(features)
	h.OffsetBones = unreal.MapFromPairs(bones)
	h.ScalarParameters = unreal.MapFromPairs(scalars)
	h.VectorParameters = unreal.MapFromPairs(colors)
	h.TextureParameters = unreal.MapFromPairs(textures)
	return h
}

// Export writes h to w as YAML. game is recorded for reference only.
func Export(w io.Writer, h *shared.HeadMorph, game string) error {
	doc := FromHeadMorph(h)
	doc.Game = game
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode head morph: %w", err)
	}
	return enc.Close()
}

// Import reads a YAML head morph.
func Import(r io.Reader) (*shared.HeadMorph, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode head morph: %w", err)
	}
	return doc.HeadMorph(), nil
}

// Of returns the head morph stored in s.
func Of(s *save.Save) (*shared.HeadMorph, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var h *shared.HeadMorph
	switch s.Format {
	case save.ME1LE:
		h = s.ME1LE.Data.Player.HeadMorph
	case save.ME1LEPS4:
		h = s.ME1LEPS4.Player.HeadMorph
	case save.ME2:
		h = s.ME2.Player.Appearance.HeadMorph
	case save.ME2LE:
		h = s.ME2LE.Player.Appearance.HeadMorph
	case save.ME3:
		h = s.ME3.Player.Appearance.HeadMorph
	default:
		return nil, fmt.Errorf("%s: head morphs are not decoded", s.Format)
	}
	if h == nil {
		return nil, ErrNoHeadMorph
	}
	return h, nil
}

// Set stores h in s; nil removes the head morph.
func Set(s *save.Save, h *shared.HeadMorph) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch s.Format {
	case save.ME1LE:
		s.ME1LE.Data.Player.SetHeadMorph(h)
	case save.ME1LEPS4:
		s.ME1LEPS4.Player.SetHeadMorph(h)
	case save.ME2:
		s.ME2.Player.Appearance.SetHeadMorph(h)
	case save.ME2LE:
		s.ME2LE.Player.Appearance.SetHeadMorph(h)
	case save.ME3:
		s.ME3.Player.Appearance.SetHeadMorph(h)
	default:
		return fmt.Errorf("%s: head morphs are not decoded", s.Format)
	}
	return nil
}
