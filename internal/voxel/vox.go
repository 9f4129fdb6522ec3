package voxel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	voxMagic   = "VOX "
	voxVersion = 150

	// MaxVoxDimension is the largest axis a .vox model can address.
	MaxVoxDimension = 256
	// MaxVoxColors is the number of usable palette slots (index 0 is reserved).
	MaxVoxColors = 255
)

var (
	ErrTooLarge      = errors.New("voxel: grid exceeds .vox model limits")
	ErrPaletteFull   = errors.New("voxel: grid uses more than 255 distinct colors")
	ErrInvalidFormat = errors.New("voxel: not a valid .vox file")
)

// EncodeVox encodes the grid as a MagicaVoxel .vox file (version 150) holding a single
// model with SIZE, XYZI and RGBA chunks. Empty voxels are omitted.
func EncodeVox(g *Grid) ([]byte, error) {
	if g.Width() > MaxVoxDimension || g.Depth() > MaxVoxDimension || g.Height() > MaxVoxDimension {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrTooLarge, g.Width(), g.Depth(), g.Height())
	}
	if g.Width() == 0 || g.Depth() == 0 || g.Height() == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrTooLarge)
	}

	palette := make([]Voxel, 0, MaxVoxColors)
	indices := make(map[Voxel]uint8)
	var xyzi bytes.Buffer
	count := 0
	var paletteErr error
	g.Each(func(x, y, z int, v Voxel) {
		if v.IsEmpty() || paletteErr != nil {
			return
		}
		idx, ok := indices[v]
		if !ok {
			if len(palette) == MaxVoxColors {
				paletteErr = ErrPaletteFull
				return
			}
			palette = append(palette, v)
			idx = uint8(len(palette))
			indices[v] = idx
		}
		xyzi.Write([]byte{uint8(x), uint8(y), uint8(z), idx})
		count++
	})
	if paletteErr != nil {
		return nil, paletteErr
	}

	var size bytes.Buffer
	_ = binary.Write(&size, binary.LittleEndian, int32(g.Width()))
	_ = binary.Write(&size, binary.LittleEndian, int32(g.Depth()))
	_ = binary.Write(&size, binary.LittleEndian, int32(g.Height()))

	var voxels bytes.Buffer
	_ = binary.Write(&voxels, binary.LittleEndian, int32(count))
	voxels.Write(xyzi.Bytes())

	var rgba bytes.Buffer
	for i := 0; i < 256; i++ {
		var c Voxel
		if i < len(palette) {
			c = palette[i]
		}
		rgba.Write([]byte{c.R, c.G, c.B, c.A})
	}

	var children bytes.Buffer
	writeChunk(&children, "SIZE", size.Bytes(), nil)
	writeChunk(&children, "XYZI", voxels.Bytes(), nil)
	writeChunk(&children, "RGBA", rgba.Bytes(), nil)

	var out bytes.Buffer
	out.WriteString(voxMagic)
	_ = binary.Write(&out, binary.LittleEndian, int32(voxVersion))
	writeChunk(&out, "MAIN", nil, children.Bytes())
	return out.Bytes(), nil
}

func writeChunk(w *bytes.Buffer, id string, content, children []byte) {
	w.WriteString(id)
	_ = binary.Write(w, binary.LittleEndian, int32(len(content)))
	_ = binary.Write(w, binary.LittleEndian, int32(len(children)))
	w.Write(content)
	w.Write(children)
}

type voxChunk struct {
	id       string
	content  []byte
	children []byte
}

func readChunk(r *bytes.Reader) (voxChunk, error) {
	var c voxChunk
	id := make([]byte, 4)
	if _, err := io.ReadFull(r, id); err != nil {
		return c, err
	}
	var contentLen, childrenLen int32
	if err := binary.Read(r, binary.LittleEndian, &contentLen); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &childrenLen); err != nil {
		return c, err
	}
	if contentLen < 0 || childrenLen < 0 || int64(contentLen)+int64(childrenLen) > int64(r.Len()) {
		return c, fmt.Errorf("%w: chunk %q overruns file", ErrInvalidFormat, string(id))
	}
	c.id = string(id)
	c.content = make([]byte, contentLen)
	c.children = make([]byte, childrenLen)
	if _, err := io.ReadFull(r, c.content); err != nil {
		return c, err
	}
	if _, err := io.ReadFull(r, c.children); err != nil {
		return c, err
	}
	return c, nil
}

// DecodeVox parses a single-model .vox file produced by EncodeVox.
func DecodeVox(data []byte) (*Grid, error) {
	if len(data) < 8 || string(data[:4]) != voxMagic {
		return nil, ErrInvalidFormat
	}
	r := bytes.NewReader(data[8:])
	main, err := readChunk(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if main.id != "MAIN" {
		return nil, fmt.Errorf("%w: expected MAIN chunk, got %q", ErrInvalidFormat, main.id)
	}

	var sizeChunk, xyziChunk, rgbaChunk []byte
	cr := bytes.NewReader(main.children)
	for cr.Len() > 0 {
		c, err := readChunk(cr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		switch c.id {
		case "SIZE":
			if sizeChunk == nil {
				sizeChunk = c.content
			}
		case "XYZI":
			if xyziChunk == nil {
				xyziChunk = c.content
			}
		case "RGBA":
			rgbaChunk = c.content
		}
	}
	if len(sizeChunk) < 12 || len(xyziChunk) < 4 || len(rgbaChunk) < 1024 {
		return nil, fmt.Errorf("%w: missing SIZE, XYZI or RGBA chunk", ErrInvalidFormat)
	}

	w := int(int32(binary.LittleEndian.Uint32(sizeChunk[0:4])))
	d := int(int32(binary.LittleEndian.Uint32(sizeChunk[4:8])))
	h := int(int32(binary.LittleEndian.Uint32(sizeChunk[8:12])))
	if w <= 0 || d <= 0 || h <= 0 || w > MaxVoxDimension || d > MaxVoxDimension || h > MaxVoxDimension {
		return nil, fmt.Errorf("%w: bad model size %dx%dx%d", ErrInvalidFormat, w, d, h)
	}
	g := NewGrid(w, d, h)

	n := int(binary.LittleEndian.Uint32(xyziChunk[0:4]))
	if len(xyziChunk) < 4+n*4 {
		return nil, fmt.Errorf("%w: XYZI holds fewer than %d voxels", ErrInvalidFormat, n)
	}
	for i := 0; i < n; i++ {
		b := xyziChunk[4+i*4 : 8+i*4]
		x, y, z, idx := int(b[0]), int(b[1]), int(b[2]), int(b[3])
		if idx == 0 || !g.InBounds(x, y, z) {
			return nil, fmt.Errorf("%w: voxel %d at (%d,%d,%d) index %d", ErrInvalidFormat, i, x, y, z, idx)
		}
		p := rgbaChunk[(idx-1)*4 : idx*4]
		g.Set(x, y, z, Voxel{R: p[0], G: p[1], B: p[2], A: p[3]})
	}
	return g, nil
}
