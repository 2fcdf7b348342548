package compressor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	spec "github.com/AlrayQiu/TLARCCompiler/spec/grammar"
)

// ForbiddenValue marks a slot of a row displacement table that belongs to no row.
const ForbiddenValue = -1

// Compress shrinks a row-major table in two steps. Identical rows are stored once, then the
// remaining unique rows are overlapped with row displacement, treating emptyValue as a hole.
func Compress(entries []int, colCount int, emptyValue int) (*spec.UniqueEntriesTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	rowCount := len(entries) / colCount
	unique, rowNums := dedupRows(entries, rowCount, colCount)

	return &spec.UniqueEntriesTable{
		UniqueEntries:    displaceRows(unique, colCount, emptyValue),
		RowNums:          rowNums,
		OriginalRowCount: rowCount,
		OriginalColCount: colCount,
	}, nil
}

// Lookup returns the entry at (row, col) of the original table.
func Lookup(tab *spec.UniqueEntriesTable, row, col int) (int, error) {
	if row < 0 || row >= tab.OriginalRowCount || col < 0 || col >= tab.OriginalColCount {
		return 0, fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	rd := tab.UniqueEntries
	d := rd.RowDisplacement[tab.RowNums[row]]
	if rd.Bounds[d+col] != tab.RowNums[row] {
		return rd.EmptyValue, nil
	}
	return rd.Entries[d+col], nil
}

func dedupRows(entries []int, rowCount, colCount int) ([]int, []int) {
	var unique []int
	rowNums := make([]int, rowCount)
	key2RowNum := map[string]int{}
	for row := 0; row < rowCount; row++ {
		r := entries[row*colCount : (row+1)*colCount]
		k := rowKey(r)
		num, ok := key2RowNum[k]
		if !ok {
			num = len(key2RowNum)
			key2RowNum[k] = num
			unique = append(unique, r...)
		}
		rowNums[row] = num
	}
	return unique, rowNums
}

func rowKey(row []int) string {
	var b strings.Builder
	for _, v := range row {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	return b.String()
}

type rowInfo struct {
	rowNum      int
	nonEmptyCol []int
}

// displaceRows places the densest rows first and slides every row right until none of its
// non-empty columns collide with entries already placed.
func displaceRows(entries []int, colCount int, emptyValue int) *spec.RowDisplacementTable {
	rowCount := len(entries) / colCount
	infos := make([]rowInfo, rowCount)
	for row := 0; row < rowCount; row++ {
		infos[row].rowNum = row
		for col := 0; col < colCount; col++ {
			if entries[row*colCount+col] != emptyValue {
				infos[row].nonEmptyCol = append(infos[row].nonEmptyCol, col)
			}
		}
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return len(infos[i].nonEmptyCol) > len(infos[j].nonEmptyCol)
	})

	packed := make([]int, len(entries))
	bounds := make([]int, len(entries))
	for i := range packed {
		packed[i] = emptyValue
		bounds[i] = ForbiddenValue
	}
	displacement := make([]int, rowCount)
	bottom := colCount
	next := 0
	for _, info := range infos {
		if len(info.nonEmptyCol) == 0 {
			continue
		}
		d := next
		for collides(bounds, d, info.nonEmptyCol) {
			d++
		}
		displacement[info.rowNum] = d
		for _, col := range info.nonEmptyCol {
			packed[d+col] = entries[info.rowNum*colCount+col]
			bounds[d+col] = info.rowNum
		}
		if d+colCount > bottom {
			bottom = d + colCount
		}
		next = d + 1
	}

	return &spec.RowDisplacementTable{
		OriginalRowCount: rowCount,
		OriginalColCount: colCount,
		EmptyValue:       emptyValue,
		Entries:          packed[:bottom],
		Bounds:           bounds[:bottom],
		RowDisplacement:  displacement,
	}
}

func collides(bounds []int, d int, cols []int) bool {
	for _, col := range cols {
		if bounds[d+col] != ForbiddenValue {
			return true
		}
	}
	return false
}
