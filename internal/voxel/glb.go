package voxel

import (
	"bytes"
	"errors"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrEmptyMesh is returned when a grid has no visible faces to export.
var ErrEmptyMesh = errors.New("voxel: grid has no visible faces")

// Mesh is a face-culled triangle mesh in glTF space (y up).
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Colors    [][4]float32
	Indices   []uint32
}

type faceSpec struct {
	normal [3]int
	base   [3]int
	u, v   [3]int
}

// u × v points along normal so the quad winds counter-clockwise seen from outside.
var faces = []faceSpec{
	{normal: [3]int{1, 0, 0}, base: [3]int{1, 0, 0}, u: [3]int{0, 1, 0}, v: [3]int{0, 0, 1}},
	{normal: [3]int{-1, 0, 0}, base: [3]int{0, 0, 0}, u: [3]int{0, 0, 1}, v: [3]int{0, 1, 0}},
	{normal: [3]int{0, 1, 0}, base: [3]int{0, 1, 0}, u: [3]int{0, 0, 1}, v: [3]int{1, 0, 0}},
	{normal: [3]int{0, -1, 0}, base: [3]int{0, 0, 0}, u: [3]int{1, 0, 0}, v: [3]int{0, 0, 1}},
	{normal: [3]int{0, 0, 1}, base: [3]int{0, 0, 1}, u: [3]int{1, 0, 0}, v: [3]int{0, 1, 0}},
	{normal: [3]int{0, 0, -1}, base: [3]int{0, 0, 0}, u: [3]int{0, 1, 0}, v: [3]int{1, 0, 0}},
}

// toGLTF maps z-up grid coordinates onto glTF's y-up frame.
func toGLTF(x, y, z float32) [3]float32 {
	return [3]float32{x, z, -y}
}

// BuildMesh emits one quad for every voxel face that borders empty space or the grid
// boundary.
func BuildMesh(g *Grid) *Mesh {
	m := &Mesh{}
	g.Each(func(x, y, z int, v Voxel) {
		if v.IsEmpty() {
			return
		}
		color := [4]float32{float32(v.R) / 255, float32(v.G) / 255, float32(v.B) / 255, float32(v.A) / 255}
		for _, f := range faces {
			nx, ny, nz := x+f.normal[0], y+f.normal[1], z+f.normal[2]
			if g.InBounds(nx, ny, nz) && !g.At(nx, ny, nz).IsEmpty() {
				continue
			}
			bx, by, bz := x+f.base[0], y+f.base[1], z+f.base[2]
			corners := [4][3]int{
				{bx, by, bz},
				{bx + f.u[0], by + f.u[1], bz + f.u[2]},
				{bx + f.u[0] + f.v[0], by + f.u[1] + f.v[1], bz + f.u[2] + f.v[2]},
				{bx + f.v[0], by + f.v[1], bz + f.v[2]},
			}
			normal := toGLTF(float32(f.normal[0]), float32(f.normal[1]), float32(f.normal[2]))
			base := uint32(len(m.Positions))
			for _, c := range corners {
				m.Positions = append(m.Positions, toGLTF(float32(c[0]), float32(c[1]), float32(c[2])))
				m.Normals = append(m.Normals, normal)
				m.Colors = append(m.Colors, color)
			}
			m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
		}
	})
	return m
}

// EncodeGLB exports the grid as a binary glTF with vertex colors.
func EncodeGLB(g *Grid, name string) ([]byte, error) {
	mesh := BuildMesh(g)
	if len(mesh.Indices) == 0 {
		return nil, ErrEmptyMesh
	}
	hasAlpha := false
	for _, c := range mesh.Colors {
		if c[3] < 1.0 {
			hasAlpha = true
			break
		}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "tilegen"
	posAccessor := modeler.WritePosition(doc, mesh.Positions)
	normalAccessor := modeler.WriteNormal(doc, mesh.Normals)
	colorAccessor := modeler.WriteColor(doc, mesh.Colors)
	indicesAccessor := modeler.WriteIndices(doc, mesh.Indices)
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(posAccessor),
			gltf.NORMAL:   uint32(normalAccessor),
			gltf.COLOR_0:  uint32(colorAccessor),
		},
		Indices: gltf.Index(uint32(indicesAccessor)),
	}
	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float32{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	material := &gltf.Material{PBRMetallicRoughness: pbr}
	if hasAlpha {
		material.AlphaMode = gltf.AlphaBlend
	} else {
		material.AlphaMode = gltf.AlphaOpaque
	}
	doc.Materials = []*gltf.Material{material}
	prim.Material = gltf.Index(0)
	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))

	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
