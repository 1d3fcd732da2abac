package table

import "time"

// Per-cell boxing overhead: every cell is stored behind an interface header.
const cellOverhead = 16

const (
	sliceHeaderBytes  = 24
	stringHeaderBytes = 16
)

// MemoryUsage estimates the deep memory footprint of the column in bytes.
// Variable-size elements (strings) are charged their actual byte length, so
// two string columns of equal row count can report very different sizes.
func (c *Column) MemoryUsage() int64 {
	total := int64(sliceHeaderBytes + stringHeaderBytes + len(c.name))
	total += int64(len(c.cells)) * cellOverhead
	for _, cell := range c.cells {
		switch v := cell.(type) {
		case nil:
			// interface header only, already counted
		case bool:
			total++
		case int64, float64:
			total += 8
		case string:
			total += stringHeaderBytes + int64(len(v))
		case time.Time:
			total += int64(timeSize)
		}
	}
	return total
}

const timeSize = 24 // wall + ext + loc pointer
