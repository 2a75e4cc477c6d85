package carousel

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardsPerView(t *testing.T) {
	assert.Equal(t, 1, CardsPerView(320))
	assert.Equal(t, 1, CardsPerView(768))
	assert.Equal(t, 2, CardsPerView(769))
	assert.Equal(t, 2, CardsPerView(1024))
	assert.Equal(t, 3, CardsPerView(1025))
	assert.Equal(t, 3, CardsPerView(1920))
}

func TestWrapAround(t *testing.T) {
	// totalItems=7, cardsPerView=3 -> maxIndex=4
	s := New(7, 3)
	require.Equal(t, 4, s.MaxIndex())

	s.GotoPage(1)
	require.Equal(t, 3, s.Index())
	s.Next()
	require.Equal(t, 4, s.Index())

	// next from maxIndex wraps to 0
	s.Next()
	assert.Equal(t, 0, s.Index())

	// prev from 0 wraps to maxIndex
	s.Prev()
	assert.Equal(t, 4, s.Index())
}

func TestIndexInvariantUnderRandomEvents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, total := range []int{0, 1, 2, 3, 5, 7, 12, 40} {
		for cpv := 1; cpv <= 3; cpv++ {
			s := New(total, cpv)
			for i := 0; i < 500; i++ {
				switch rng.Intn(5) {
				case 0:
					s.Next()
				case 1:
					s.Prev()
				case 2:
					s.GotoPage(rng.Intn(10) - 2)
				case 3:
					s.Tick()
				case 4:
					s.Swipe(float64(rng.Intn(200)-100), float64(rng.Intn(100)-50))
				}
				idx := s.Index()
				require.GreaterOrEqual(t, idx, 0)
				require.LessOrEqual(t, idx, s.MaxIndex())
			}
		}
	}
}

func TestGotoPageIgnoredWhileAnimating(t *testing.T) {
	s := New(9, 3)
	s.BeginTransition()
	s.GotoPage(2)
	assert.Equal(t, 0, s.Index())

	s.EndTransition()
	s.GotoPage(2)
	assert.Equal(t, 6, s.Index())
}

func TestSwipeThresholds(t *testing.T) {
	s := New(7, 3)

	// below threshold: ignored
	s.Swipe(-39, 0)
	assert.Equal(t, 0, s.Index())

	// primarily vertical: ignored
	s.Swipe(-60, 80)
	assert.Equal(t, 0, s.Index())

	// leftward swipe advances
	s.Swipe(-41, 5)
	assert.Equal(t, 3, s.Index())

	// rightward swipe retreats
	s.Swipe(41, -5)
	assert.Equal(t, 0, s.Index())
}

func TestAutoAdvance(t *testing.T) {
	s := New(7, 3)
	require.Equal(t, TimerRunning, s.Mode())

	assert.True(t, s.Tick())
	assert.Equal(t, 3, s.Index())

	s.PointerEnter()
	assert.Equal(t, TimerPaused, s.Mode())
	assert.False(t, s.Tick())
	assert.Equal(t, 3, s.Index())

	s.PointerLeave()
	assert.True(t, s.Tick())
	assert.Equal(t, 4, s.Index())
}

func TestSmallListNeverAdvances(t *testing.T) {
	s := New(3, 3)
	assert.Equal(t, 0, s.MaxIndex())
	assert.Equal(t, TimerIdle, s.Mode())
	assert.False(t, s.ShowControls())
	assert.False(t, s.Tick())
	assert.Equal(t, 0, s.Index())
}

func TestSetItemsReclampsIndex(t *testing.T) {
	s := New(12, 3)
	s.GotoPage(3)
	require.Equal(t, 9, s.Index())

	s.SetItems(5)
	assert.Equal(t, 2, s.Index())
	assert.Equal(t, 2, s.MaxIndex())

	s.SetItems(0)
	assert.Equal(t, 0, s.Index())
}

func TestResize(t *testing.T) {
	s := New(7, 3)
	s.GotoPage(1)
	require.Equal(t, 3, s.Index())

	s.Resize(500) // 1 card per view, maxIndex=6
	assert.Equal(t, 6, s.MaxIndex())
	assert.Equal(t, 3, s.Index())

	s.Resize(1920)
	assert.Equal(t, 4, s.MaxIndex())
	assert.Equal(t, 3, s.Index())
}

func TestWindow(t *testing.T) {
	s := New(7, 3)
	start, end := s.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	s.GotoPage(1)
	s.Next() // clamped at maxIndex=4
	start, end = s.Window()
	assert.Equal(t, 4, start)
	assert.Equal(t, 7, end)
}
