package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVirtualized_Threshold(t *testing.T) {
	assert.False(t, Virtualized(9))
	assert.False(t, Virtualized(10))
	assert.True(t, Virtualized(11))
}

func TestWindowFor_UnderThresholdMaterializesEverything(t *testing.T) {
	w := WindowFor(9, 500, 400, 0)
	assert.False(t, w.Virtualized)
	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 9, w.End)
}

func TestWindowFor_OverThresholdWindows(t *testing.T) {
	// 50 rows of 100px, scrolled 1000px into a 400px viewport:
	// rows 10..14 visible, plus 3 overscan rows each side
	w := WindowFor(50, 1000, 400, 100)
	assert.True(t, w.Virtualized)
	assert.Equal(t, 7, w.Start)
	assert.Equal(t, 18, w.End)
}

func TestWindowFor_TopOfListClampsOverscan(t *testing.T) {
	w := WindowFor(11, 0, 300, 100)
	assert.True(t, w.Virtualized)
	assert.Equal(t, 0, w.Start)
	assert.LessOrEqual(t, w.End, 11)
}

func TestWindowFor_BottomOfListClampsEnd(t *testing.T) {
	w := WindowFor(11, 10000, 400, 100)
	assert.True(t, w.Virtualized)
	assert.Equal(t, 11, w.End)
	assert.LessOrEqual(t, w.Start, w.End)
}

func TestWindowFor_FallsBackToEstimatedRowHeight(t *testing.T) {
	measured := WindowFor(40, 960, 480, EstimatedRowHeight)
	unmeasured := WindowFor(40, 960, 480, 0)
	assert.Equal(t, measured, unmeasured)
}

// Virtualization only changes what is materialized, never the logical
// list: a column of 11 leads and a column of 9 leads come back from the
// controller identical in content and order regardless of windowing.
func TestVirtualization_IsTransparentToBoardState(t *testing.T) {
	over := make([]int64, 0, 11)
	under := make([]int64, 0, 9)

	columns := threeColumnFixture()
	columns[100] = nil
	columns[300] = nil
	for i := int64(1); i <= 11; i++ {
		columns[100] = append(columns[100], leadFixture(i, 100))
		over = append(over, i)
	}
	for i := int64(21); i <= 29; i++ {
		columns[300] = append(columns[300], leadFixture(i, 300))
		under = append(under, i)
	}

	stages := new(MockStageStore)
	leads := new(MockLeadStore)
	c, _ := newTestController(t, stages, leads, columns)

	snap := c.Snapshot()
	assert.Equal(t, over, leadIDsOf(snap.LeadsByStage[100]))
	assert.Equal(t, under, leadIDsOf(snap.LeadsByStage[300]))

	assert.True(t, Virtualized(len(snap.LeadsByStage[100])))
	assert.False(t, Virtualized(len(snap.LeadsByStage[300])))
}
