// internal/planner/planner.go
package planner

import (
	"fmt"
	"sort"

	"github.com/tamzrod/modbus-points/internal/point"
	"github.com/tamzrod/modbus-points/internal/register"
)

// DefaultProximity is the read merge distance used when none is configured.
const DefaultProximity uint16 = 5

// Direction selects read or write planning rules.
type Direction uint8

const (
	Read Direction = iota
	Write
)

func (d Direction) String() string {
	if d == Write {
		return "write"
	}
	return "read"
}

// NotWritableError is returned when a write targets a read-only block.
type NotWritableError struct {
	Name  string
	Block register.BlockType
}

func (e *NotWritableError) Error() string {
	return fmt.Sprintf("planner: point %q is in read-only block %s", e.Name, e.Block)
}

// Member is one point inside a group.
// Offset is the point address minus the group start.
type Member struct {
	Name   string
	Offset uint16
}

// Group is one wire transaction.
type Group struct {
	Block    register.BlockType
	Function register.FunctionCode
	Start    uint16
	Members  []Member
}

// Quantity is the number of items the transaction spans, gaps included.
func (g Group) Quantity() uint16 {
	if len(g.Members) == 0 {
		return 0
	}
	return g.Members[len(g.Members)-1].Offset + 1
}

// Plan partitions points into transaction groups.
//
// Groups come out ordered by block type, then by start address. Reads merge
// neighbours whose address gap is <= proximity; writes merge only runs of
// consecutive addresses. A group never spans more items than one request of
// its function code may carry.
//
// Plan is pure: it never touches the wire. A write against a read-only block
// fails before any group is produced.
func Plan(points []point.Descriptor, dir Direction, proximity uint16) ([]Group, error) {
	if dir == Write {
		for _, p := range points {
			if !register.Operations(p.Block).Writable() {
				return nil, &NotWritableError{Name: p.Name, Block: p.Block}
			}
		}
	}

	byBlock := make(map[register.BlockType][]point.Descriptor)
	for _, p := range points {
		byBlock[p.Block] = append(byBlock[p.Block], p)
	}

	var groups []Group
	for _, block := range register.BlockTypes {
		pts := byBlock[block]
		if len(pts) == 0 {
			continue
		}

		sort.SliceStable(pts, func(i, j int) bool {
			return pts[i].Address < pts[j].Address
		})

		groups = append(groups, planBlock(block, pts, dir, proximity)...)
	}

	return groups, nil
}

// planBlock groups address-sorted points of one block type.
func planBlock(block register.BlockType, pts []point.Descriptor, dir Direction, proximity uint16) []Group {
	ops := register.Operations(block)

	limit := register.MaxQuantity(ops.Read)
	if dir == Write {
		limit = register.MaxQuantity(ops.WriteMultiple)
	}

	var (
		out  []Group
		cur  Group
		prev uint16
	)

	flush := func() {
		if len(cur.Members) == 0 {
			return
		}
		cur.Function = selectFunction(ops, dir, len(cur.Members))
		out = append(out, cur)
		cur = Group{}
	}

	for _, p := range pts {
		if len(cur.Members) > 0 && !joins(dir, prev, p.Address, cur.Start, limit, proximity) {
			flush()
		}

		if len(cur.Members) == 0 {
			cur = Group{Block: block, Start: p.Address}
		}

		cur.Members = append(cur.Members, Member{
			Name:   p.Name,
			Offset: p.Address - cur.Start,
		})
		prev = p.Address
	}
	flush()

	return out
}

// joins reports whether a point at addr may extend the group whose last
// member sits at prev.
func joins(dir Direction, prev, addr, start, limit, proximity uint16) bool {
	gap := addr - prev

	if dir == Write {
		if gap != 1 {
			return false
		}
	} else if gap > proximity {
		return false
	}

	return uint32(addr-start)+1 <= uint32(limit)
}

func selectFunction(ops register.OperationSet, dir Direction, members int) register.FunctionCode {
	if dir == Read {
		return ops.Read
	}
	if members == 1 {
		return ops.WriteSingle
	}
	return ops.WriteMultiple
}
