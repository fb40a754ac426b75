package shared

import (
	"fmt"

	"github.com/goopsie/trilogySaveTools/pkg/unreal"
)

// HeadMorph is a custom face: hair and accessory meshes, morph target
// weights, bone offsets, the four LOD vertex sets and material parameters.
type HeadMorph struct {
	HairMesh          string
	AccessoryMesh     []string
	MorphFeatures     *unreal.OrderedMap[string, float32]
	OffsetBones       *unreal.OrderedMap[string, Vector]
	Lod0Vertices      []Vector
	Lod1Vertices      []Vector
	Lod2Vertices      []Vector
	Lod3Vertices      []Vector
	ScalarParameters  *unreal.OrderedMap[string, float32]
	VectorParameters  *unreal.OrderedMap[string, LinearColor]
	TextureParameters *unreal.OrderedMap[string, string]
}

func decodeVectors(d *unreal.Decoder) ([]Vector, error) {
	return unreal.DecodeSeq(d, 12, unreal.DecodeStruct[Vector])
}

func (h *HeadMorph) lods() []*[]Vector {
	return []*[]Vector{&h.Lod0Vertices, &h.Lod1Vertices, &h.Lod2Vertices, &h.Lod3Vertices}
}

func (h *HeadMorph) UnmarshalUnreal(d *unreal.Decoder) (err error) {
	if h.HairMesh, err = d.Str(); err != nil {
		return fmt.Errorf("hair mesh: %w", err)
	}
	if h.AccessoryMesh, err = unreal.DecodeStrings(d); err != nil {
		return fmt.Errorf("accessory mesh: %w", err)
	}
	if h.MorphFeatures, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, (*unreal.Decoder).F32); err != nil {
		return fmt.Errorf("morph features: %w", err)
	}
	if h.OffsetBones, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, unreal.DecodeStruct[Vector]); err != nil {
		return fmt.Errorf("offset bones: %w", err)
	}
	for i, lod := range h.lods() {
		if *lod, err = decodeVectors(d); err != nil {
			return fmt.Errorf("lod%d vertices: %w", i, err)
		}
	}
	if h.ScalarParameters, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, (*unreal.Decoder).F32); err != nil {
		return fmt.Errorf("scalar parameters: %w", err)
	}
	if h.VectorParameters, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, unreal.DecodeStruct[LinearColor]); err != nil {
		return fmt.Errorf("vector parameters: %w", err)
	}
	if h.TextureParameters, err = unreal.DecodeMap(d, (*unreal.Decoder).Str, (*unreal.Decoder).Str); err != nil {
		return fmt.Errorf("texture parameters: %w", err)
	}
	return nil
}

func (h *HeadMorph) MarshalUnreal(e *unreal.Encoder) error {
	if err := e.Str(h.HairMesh); err != nil {
		return err
	}
	if err := unreal.EncodeStrings(e, h.AccessoryMesh); err != nil {
		return err
	}
	if err := unreal.EncodeMap(e, h.MorphFeatures, (*unreal.Encoder).Str, unreal.PutF32); err != nil {
		return err
	}
	if err := unreal.EncodeMap(e, h.OffsetBones, (*unreal.Encoder).Str, unreal.EncodeStruct[Vector]); err != nil {
		return err
	}
	for _, lod := range h.lods() {
		if err := unreal.EncodeSlice(e, *lod); err != nil {
			return err
		}
	}
	if err := unreal.EncodeMap(e, h.ScalarParameters, (*unreal.Encoder).Str, unreal.PutF32); err != nil {
		return err
	}
	if err := unreal.EncodeMap(e, h.VectorParameters, (*unreal.Encoder).Str, unreal.EncodeStruct[LinearColor]); err != nil {
		return err
	}
	return unreal.EncodeMap(e, h.TextureParameters, (*unreal.Encoder).Str, (*unreal.Encoder).Str)
}
