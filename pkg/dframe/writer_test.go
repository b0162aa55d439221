package dframe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastedbreadandomelette/dframe/pkg/errors"
)

// fillBody partitions a header-less body and runs the parallel fill.
func fillBody(t *testing.T, body string, shardCount, columnCount int) ([]Cell, []CellType) {
	t.Helper()
	shards := partition([]byte(body), shardCount)
	flat, types, err := fill([]byte(body), shards, columnCount)
	require.NoError(t, err)
	return flat, types
}

func TestFillTypedCells(t *testing.T) {
	flat, types := fillBody(t, "1,2\n3,x\n", 1, 2)
	assert.Equal(t, []Cell{IntCell(1), IntCell(2), IntCell(3), StringCell("x")}, flat)
	assert.Equal(t, []CellType{CellTypeI64, CellTypeString}, types)
}

func TestFillDecimals(t *testing.T) {
	flat, types := fillBody(t, "3.5\n3.\n.5\n", 1, 1)
	assert.Equal(t, []Cell{FloatCell(3.5), FloatCell(3), FloatCell(0.5)}, flat)
	assert.Equal(t, []CellType{CellTypeF64}, types)
}

func TestFillSecondPointDemotesToString(t *testing.T) {
	flat, types := fillBody(t, "3.5.6\n", 1, 1)
	assert.Equal(t, []Cell{StringCell("3.5.6")}, flat)
	assert.Equal(t, []CellType{CellTypeString}, types)
}

func TestFillQuotedSeparator(t *testing.T) {
	flat, _ := fillBody(t, "\"a,b\",2\n", 1, 2)
	assert.Equal(t, []Cell{StringCell("a,b"), IntCell(2)}, flat)
}

func TestFillQuotedNumbersKeepTheirType(t *testing.T) {
	flat, types := fillBody(t, "\"12\",\"3.5\"\n", 1, 2)
	assert.Equal(t, []Cell{IntCell(12), FloatCell(3.5)}, flat)
	assert.Equal(t, []CellType{CellTypeI64, CellTypeF64}, types)
}

func TestFillQuotedLeadingPointDecimal(t *testing.T) {
	flat, types := fillBody(t, "\".5\"\n", 1, 1)
	assert.Equal(t, []Cell{FloatCell(0.5)}, flat)
	assert.Equal(t, []CellType{CellTypeF64}, types)
}

func TestFillEmptyCellsAreNull(t *testing.T) {
	flat, types := fillBody(t, "1,\n,2\n", 1, 2)
	assert.Equal(t, []Cell{IntCell(1), NullCell(), NullCell(), IntCell(2)}, flat)
	assert.Equal(t, []CellType{CellTypeI64, CellTypeI64}, types)
}

func TestFillAllNullColumn(t *testing.T) {
	_, types := fillBody(t, "1,\n2,\n", 1, 2)
	assert.Equal(t, []CellType{CellTypeI64, CellTypeNull}, types)
}

func TestFillWhitespaceAroundNumbers(t *testing.T) {
	flat, types := fillBody(t, " 42 ,x\n", 1, 2)
	assert.Equal(t, []Cell{IntCell(42), StringCell("x")}, flat)
	assert.Equal(t, []CellType{CellTypeI64, CellTypeString}, types)
}

func TestFillInternalSpaceMakesString(t *testing.T) {
	flat, _ := fillBody(t, "12 34\n", 1, 1)
	assert.Equal(t, []Cell{StringCell("12 34")}, flat)
}

func TestFillCRLFLines(t *testing.T) {
	flat, types := fillBody(t, "1,a\r\n2,b\r\n", 1, 2)
	assert.Equal(t, []Cell{IntCell(1), StringCell("a"), IntCell(2), StringCell("b")}, flat)
	assert.Equal(t, []CellType{CellTypeI64, CellTypeString}, types)
}

func TestFillMissingFinalTerminator(t *testing.T) {
	flat, _ := fillBody(t, "1,a\n2,b", 1, 2)
	assert.Equal(t, []Cell{IntCell(1), StringCell("a"), IntCell(2), StringCell("b")}, flat)
}

func TestFillColumnTypeUpgrades(t *testing.T) {
	_, types := fillBody(t, "1\n2.5\n3\n", 1, 1)
	assert.Equal(t, []CellType{CellTypeF64}, types)

	_, types = fillBody(t, "1\n2.5\nx\n", 1, 1)
	assert.Equal(t, []CellType{CellTypeString}, types)
}

func TestFillMergesTypesAcrossShards(t *testing.T) {
	body := "1\n2\n3\nx\n"
	for shardCount := 1; shardCount <= 4; shardCount++ {
		_, types := fillBody(t, body, shardCount, 1)
		assert.Equal(t, []CellType{CellTypeString}, types, "shards=%d", shardCount)
	}
}

func TestFillDeterministicAcrossShardCounts(t *testing.T) {
	body := "1,aa,2.5\n2,bb,3.5\n3,cc,4.5\n4,dd,5.5\n5,ee,6.5\n"
	ref, refTypes := fillBody(t, body, 1, 3)
	for shardCount := 2; shardCount <= 8; shardCount++ {
		t.Run(fmt.Sprintf("shards=%d", shardCount), func(t *testing.T) {
			flat, types := fillBody(t, body, shardCount, 3)
			assert.Equal(t, ref, flat)
			assert.Equal(t, refTypes, types)
		})
	}
}

func TestFillIntegerOverflowAborts(t *testing.T) {
	body := "99999999999999999999\n"
	shards := partition([]byte(body), 1)
	_, _, err := fill([]byte(body), shards, 1)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestFillUnterminatedQuoteConsumesRemainder(t *testing.T) {
	flat, _ := fillBody(t, "\"ab\ncd", 1, 1)
	// The open quote swallows the line feed; the remainder is one
	// string cell and the second counted row stays Null.
	assert.Equal(t, []Cell{StringCell("ab\ncd"), NullCell()}, flat)
}

func TestSplitRowsTiling(t *testing.T) {
	flat := make([]Cell, 6)
	shards := []shardDescriptor{{rows: 2}, {rows: 1}}
	views, err := splitRows(flat, shards, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Len(t, views[0], 4)
	assert.Len(t, views[1], 2)

	// Views are windows onto the same backing array.
	views[1][0] = IntCell(7)
	assert.Equal(t, IntCell(7), flat[4])
}

func TestSplitRowsRejectsOverflow(t *testing.T) {
	flat := make([]Cell, 4)
	_, err := splitRows(flat, []shardDescriptor{{rows: 3}}, 2)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInternal))
}

func TestSplitRowsRejectsShortfall(t *testing.T) {
	flat := make([]Cell, 4)
	_, err := splitRows(flat, []shardDescriptor{{rows: 1}}, 2)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInternal))
}
