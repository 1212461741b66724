package index

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
)

// ErrDimension is returned when a vector's length does not match the index.
var ErrDimension = errors.New("index: vector dimension mismatch")

// flatMagic marks index files; the bytes on disk read "CFIX".
const flatMagic uint32 = 0x58494643

// Flat is an exhaustive inner-product index. Vectors are L2-normalized
// on insertion, so inner product equals cosine similarity.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat creates an empty index for vectors of the given length
func NewFlat(dim int) *Flat {
	return &Flat{dim: dim}
}

// Dim returns the vector length the index accepts
func (f *Flat) Dim() int {
	return f.dim
}

// Len returns the number of stored vectors
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Add normalizes and appends a vector. Its position is the insertion
// order, which callers pair with their record list.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimension, len(vec), f.dim)
	}
	f.vectors = append(f.vectors, normalize(vec))
	return nil
}

// Hit is a single search result
type Hit struct {
	Position int
	Score    float32
}

// Search returns the k nearest stored vectors by inner product,
// highest score first. Ties keep insertion order.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(query), f.dim)
	}
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}

	q := normalize(query)
	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{Position: i, Score: dot(q, v)}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Save writes the index: magic, dimension and count as little-endian
// uint32, then the normalized vectors as float32 values.
func (f *Flat) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := bufio.NewWriter(file)
	for _, field := range []uint32{flatMagic, uint32(f.dim), uint32(len(f.vectors))} {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("write index header: %w", err)
		}
	}
	for _, vec := range f.vectors {
		if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
			return fmt.Errorf("write index vectors: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush index file: %w", err)
	}

	return file.Close()
}

// LoadFlat reads an index written by Save
func LoadFlat(path string) (*Flat, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer func() { _ = file.Close() }()

	r := bufio.NewReader(file)
	var magic, dim, count uint32
	for _, field := range []*uint32{&magic, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return nil, fmt.Errorf("read index header: %w", err)
		}
	}
	if magic != flatMagic {
		return nil, fmt.Errorf("index: unrecognized file %s", path)
	}
	if dim == 0 {
		return nil, fmt.Errorf("index: zero dimension in %s", path)
	}

	f := NewFlat(int(dim))
	f.vectors = make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		vec := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("read vector %d: %w", i, err)
		}
		f.vectors = append(f.vectors, vec)
	}

	return f, nil
}

// normalize returns an L2-normalized copy. Zero vectors stay zero.
func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}

	out := make([]float32, len(vec))
	if sum == 0 {
		return out
	}

	norm := math.Sqrt(sum)
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
