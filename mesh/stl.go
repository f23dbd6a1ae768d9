package mesh

import (
	"bufio"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"sync"

	"github.com/sjhalayka-port/qjuliamesh/vec3"
)

// ErrNotFinalized is returned by WriteSTL when the mesh has not been
// finalised, or has no triangles.
var ErrNotFinalized = errors.New("mesh: cannot write an un-finalised or empty mesh")

// DefaultSTLBufferWidth is the triangle count the writer buffers before
// flushing when the caller passes bufferWidth <= 0.
const DefaultSTLBufferWidth = 65536

// PerTriangleSize is twelve 4-byte floats (normal + 3 vertices) plus one
// 2-byte attribute word: one binary STL facet record.
const PerTriangleSize = 12*4 + 2

// WriteSTL emits the mesh as a binary stereolithography file: an
// 80-byte zero header, a little-endian uint32 triangle count, then per
// triangle a float32 normal, three float32 vertex positions, and a
// zero uint16 attribute word. Writes are buffered bufferWidth triangles
// at a time (0 selects the default of 65536); a goroutine drains a
// channel of encoded records and writes each one, streaming geometry
// out rather than buffering the whole model in memory.
func (m *IndexedMesh) WriteSTL(path string, bufferWidth int) error {
	if !m.finalized || len(m.triangles) == 0 {
		return ErrNotFinalized
	}
	if bufferWidth <= 0 {
		bufferWidth = DefaultSTLBufferWidth
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, PerTriangleSize*bufferWidth)

	var header [80]byte
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.triangles))); err != nil {
		return err
	}

	type encoded struct {
		normal     vec3.Vec
		v0, v1, v2 vec3.Vec
	}

	in := make(chan encoded, bufferWidth)
	errCh := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		record := make([]byte, PerTriangleSize)
		for e := range in {
			putFloat32(record[0:4], e.normal.X)
			putFloat32(record[4:8], e.normal.Y)
			putFloat32(record[8:12], e.normal.Z)
			putFloat32(record[12:16], e.v0.X)
			putFloat32(record[16:20], e.v0.Y)
			putFloat32(record[20:24], e.v0.Z)
			putFloat32(record[24:28], e.v1.X)
			putFloat32(record[28:32], e.v1.Y)
			putFloat32(record[32:36], e.v1.Z)
			putFloat32(record[36:40], e.v2.X)
			putFloat32(record[40:44], e.v2.Y)
			putFloat32(record[44:48], e.v2.Z)
			record[48], record[49] = 0, 0
			if _, err := w.Write(record); err != nil {
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	for i := range m.triangles {
		v0, v1, v2 := m.triangleVerts(i)
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		in <- encoded{normal: normal, v0: v0, v1: v1, v2: v2}
	}
	close(in)
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
	}

	return w.Flush()
}

func putFloat32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}
