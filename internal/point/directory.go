// internal/point/directory.go
package point

import (
	"fmt"

	"github.com/tamzrod/modbus-points/internal/register"
)

// Descriptor describes one named point on a device.
type Descriptor struct {
	Name    string
	Block   register.BlockType
	Address uint16
}

// UnknownPointError is returned when a requested name has no descriptor.
type UnknownPointError struct {
	Name string
}

func (e *UnknownPointError) Error() string {
	return fmt.Sprintf("point: unknown point %q", e.Name)
}

// Directory is the immutable name -> descriptor table of one device.
// Safe for concurrent readers.
type Directory struct {
	points []Descriptor
	index  map[string]int
}

// NewDirectory copies points into a directory.
// Names must be unique and non-empty.
func NewDirectory(points []Descriptor) (*Directory, error) {
	d := &Directory{
		points: make([]Descriptor, len(points)),
		index:  make(map[string]int, len(points)),
	}
	copy(d.points, points)

	for i, p := range d.points {
		if p.Name == "" {
			return nil, fmt.Errorf("point: empty name at index %d", i)
		}
		if _, dup := d.index[p.Name]; dup {
			return nil, fmt.Errorf("point: duplicate name %q", p.Name)
		}
		d.index[p.Name] = i
	}

	return d, nil
}

// Lookup returns the descriptor for name.
func (d *Directory) Lookup(name string) (Descriptor, bool) {
	i, ok := d.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return d.points[i], true
}

// Resolve returns the descriptors of names, in directory order, each once.
func (d *Directory) Resolve(names []string) ([]Descriptor, error) {
	want := make(map[int]struct{}, len(names))
	for _, n := range names {
		i, ok := d.index[n]
		if !ok {
			return nil, &UnknownPointError{Name: n}
		}
		want[i] = struct{}{}
	}

	out := make([]Descriptor, 0, len(want))
	for i, p := range d.points {
		if _, ok := want[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Points returns a copy of all descriptors in directory order.
func (d *Directory) Points() []Descriptor {
	out := make([]Descriptor, len(d.points))
	copy(out, d.points)
	return out
}

// Len returns the number of points.
func (d *Directory) Len() int {
	return len(d.points)
}
