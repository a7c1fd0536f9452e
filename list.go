package bsor

import "fmt"

// Every list section is an int32 count followed by that many records.

// readList decodes a count-prefixed list of variable-width records, each at
// least minSize bytes on the wire. A negative count yields an empty list. The
// result is never nil unless an error was latched.
func readList[T any](r *Reader, minSize int, decode func(*Reader, *T)) []T {
	var count int32
	r.ReadInt32(&count)
	if r.err != nil {
		return nil
	}
	n := clampCount(count)
	items := make([]T, 0, listCap(n, r.Len(), minSize))
	for i := 0; i < n; i++ {
		var item T
		decode(r, &item)
		if r.err != nil {
			return nil
		}
		items = append(items, item)
	}
	return items
}

// listCap bounds the capacity reserved for n records by how many of them the
// remaining bytes could hold.
func listCap(n, remaining, minSize int) int {
	return min(n, remaining/minSize)
}

// readFixedList decodes a count-prefixed list of fixed-width records. The
// count is checked against the remaining bytes before anything is allocated.
func readFixedList[T any](r *Reader) []T {
	var count int32
	r.ReadInt32(&count)
	if r.err != nil {
		return nil
	}
	n, size := clampCount(count), sizeOf[T]()
	if n > r.Len()/size {
		r.setError(fmt.Errorf("%w: %d records of %d bytes at offset %d, have %d bytes",
			ErrTruncatedData, n, size, r.pos, r.Len()))
		return nil
	}
	items := make([]T, n)
	for i := range items {
		ReadFixed(r, &items[i])
	}
	if r.err != nil {
		return nil
	}
	return items
}

func writeList[T any](w *Writer, items []T, encode func(*Writer, *T)) {
	w.WriteInt32(int32(len(items)))
	for i := range items {
		encode(w, &items[i])
	}
}

func writeFixedList[T any](w *Writer, items []T) {
	writeList(w, items, WriteFixed[T])
}

func listSize[T any](items []T, size func(*T) int) int {
	total := 4
	for i := range items {
		total += size(&items[i])
	}
	return total
}

func fixedListSize[T any](items []T) int {
	return 4 + len(items)*sizeOf[T]()
}
