package ecs

import "unsafe"

// column is a type-erased dense slice of one component type. Rows stay dense
// through swapRemove; the archetype owning the column tracks which entity
// occupies which row.
//
// Pointers returned by ptr are invalidated when the column grows. Structural
// changes during iteration must therefore go through Commands, which defers
// them to the end of the tick.
type column interface {
	// appendValue appends v (a T or *T) and returns the new row index,
	// or -1 if v has the wrong type.
	appendValue(v any) int
	// copyFrom appends a copy of src's row to this column. src must hold
	// the same component type.
	copyFrom(src column, row int) int
	// set overwrites the component at row with v (a T or *T).
	set(row int, v any) bool
	// swapRemove overwrites row with the last row and shrinks the column.
	swapRemove(row int)
	// ptr returns the address of the component at row.
	ptr(row int) unsafe.Pointer
	// value returns the component at row boxed as a *T.
	value(row int) any
	// len returns the number of rows.
	len() int
}

type typedColumn[T any] struct {
	data []T
}

func (c *typedColumn[T]) appendValue(v any) int {
	switch x := v.(type) {
	case T:
		c.data = append(c.data, x)
	case *T:
		c.data = append(c.data, *x)
	default:
		return -1
	}
	return len(c.data) - 1
}

func (c *typedColumn[T]) copyFrom(src column, row int) int {
	c.data = append(c.data, src.(*typedColumn[T]).data[row])
	return len(c.data) - 1
}

func (c *typedColumn[T]) set(row int, v any) bool {
	switch x := v.(type) {
	case T:
		c.data[row] = x
	case *T:
		c.data[row] = *x
	default:
		return false
	}
	return true
}

func (c *typedColumn[T]) swapRemove(row int) {
	last := len(c.data) - 1
	c.data[row] = c.data[last]
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
}

func (c *typedColumn[T]) ptr(row int) unsafe.Pointer {
	return unsafe.Pointer(&c.data[row])
}

func (c *typedColumn[T]) value(row int) any {
	return &c.data[row]
}

func (c *typedColumn[T]) len() int {
	return len(c.data)
}
