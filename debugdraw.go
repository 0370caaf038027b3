package bullet

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// DrawOptions controls DrawShapeGroups.
type DrawOptions struct {
	// Palette colors groups in order, wrapping around. Defaults to
	// DefaultGroupPalette when empty.
	Palette []color.RGBA
	// Blend is the compositing mode. The zero value is source-over.
	Blend ebiten.Blend
}

// DefaultGroupPalette is the palette used when DrawOptions has none.
var DefaultGroupPalette = []color.RGBA{
	{0x4c, 0xc9, 0xf0, 0xff},
	{0xf7, 0x7f, 0x00, 0xff},
	{0x90, 0xbe, 0x6d, 0xff},
	{0xf9, 0xc7, 0x4f, 0xff},
	{0xf1, 0x5b, 0xb5, 0xff},
	{0x9b, 0x5d, 0xe5, 0xff},
}

// maxBatchVertices keeps a DrawTriangles batch within uint16 indices.
const maxBatchVertices = 1<<16 - 1

var whiteSubImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// DrawShapeGroups renders every triangle of every group onto dst, one flat
// color per group. Vertices go through view × group transform and are then
// projected orthographically (x right, y down, z dropped).
func DrawShapeGroups(dst *ebiten.Image, groups []*ShapeGroup, view Matrix4, opts *DrawOptions) {
	palette := DefaultGroupPalette
	var blend ebiten.Blend
	if opts != nil {
		if len(opts.Palette) > 0 {
			palette = opts.Palette
		}
		blend = opts.Blend
	}

	top := &ebiten.DrawTrianglesOptions{Blend: blend}
	var verts []ebiten.Vertex
	var indices []uint16
	flush := func() {
		if len(indices) > 0 {
			dst.DrawTriangles(verts, indices, whitePixel(), top)
		}
		verts = verts[:0]
		indices = indices[:0]
	}
	for i, g := range groups {
		c := palette[i%len(palette)]
		for _, part := range g.Parts {
			tris, err := part.Triangles()
			if err != nil {
				continue
			}
			m := view.Mul(g.Transform)
			for len(tris) > 0 {
				room := (maxBatchVertices - len(verts)) / 3 * 3
				if room == 0 {
					flush()
					continue
				}
				chunk := tris[:min(room, len(tris))]
				tris = tris[len(chunk):]
				verts, indices = projectTriangles(verts, indices, part.Mesh, chunk, m, c)
			}
		}
	}
	flush()
}

// ProjectGroup appends the triangles of g, transformed by view × g.Transform,
// to verts and indices. Parts that are not triangle lists are skipped.
func ProjectGroup(verts []ebiten.Vertex, indices []uint16, g *ShapeGroup, view Matrix4, c color.RGBA) ([]ebiten.Vertex, []uint16) {
	m := view.Mul(g.Transform)
	for _, part := range g.Parts {
		tris, err := part.Triangles()
		if err != nil {
			continue
		}
		verts, indices = projectTriangles(verts, indices, part.Mesh, tris, m, c)
	}
	return verts, indices
}

// projectTriangles emits one vertex per index so each triangle keeps its own
// corners. Triangles referencing missing vertices are dropped.
func projectTriangles(verts []ebiten.Vertex, indices []uint16, mesh *Mesh, tris []uint16, m Matrix4, c color.RGBA) ([]ebiten.Vertex, []uint16) {
	r := float32(c.R) / 0xff
	gr := float32(c.G) / 0xff
	b := float32(c.B) / 0xff
	a := float32(c.A) / 0xff
	n := mesh.NumVertices()
	for t := 0; t+3 <= len(tris); t += 3 {
		tri := tris[t : t+3]
		if int(tri[0]) >= n || int(tri[1]) >= n || int(tri[2]) >= n {
			continue
		}
		for _, idx := range tri {
			p := m.TransformPoint(mesh.Position(int(idx)))
			indices = append(indices, uint16(len(verts)))
			verts = append(verts, ebiten.Vertex{
				DstX:   p.X,
				DstY:   p.Y,
				SrcX:   1,
				SrcY:   1,
				ColorR: r * a,
				ColorG: gr * a,
				ColorB: b * a,
				ColorA: a,
			})
		}
	}
	return verts, indices
}
