package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"unit range", 0, 1, 10, []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}},
		{"step of five", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"uneven stop", 0, 97, 10, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{"reversed", 10, 0, 2, []float64{10, 5, 0}},
		{"equal bounds", 3, 3, 10, []float64{3}},
		{"zero count", 0, 10, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.start, tt.stop, tt.count)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestTicks_Revenue(t *testing.T) {
	ticks := Ticks(0, 2787965087, 10)

	require.Len(t, ticks, 14)
	assert.Equal(t, 0.0, ticks[0])
	assert.Equal(t, 2.6e9, ticks[len(ticks)-1])
	assert.Equal(t, 2e8, TickStep(0, 2787965087, 10))
}

func TestLinearScale_Map(t *testing.T) {
	s := NewLinearScale([2]float64{0, 300}, [2]float64{0, 280})

	assert.Equal(t, 0.0, s.Map(0))
	assert.Equal(t, 280.0, s.Map(300))
	assert.InDelta(t, 140.0, s.Map(150), 1e-9)

	flat := NewLinearScale([2]float64{5, 5}, [2]float64{0, 100})
	assert.Equal(t, 50.0, flat.Map(5))
}

func TestBandScale(t *testing.T) {
	s := NewBandScale([]string{"Action", "Adventure", "Drama"}, [2]float64{0, 380}, 0.25, true, 0.5)

	assert.Equal(t, 116.0, s.Step())
	assert.Equal(t, 87.0, s.Bandwidth())

	for genre, want := range map[string]float64{"Action": 31, "Adventure": 147, "Drama": 263} {
		got, ok := s.Map(genre)
		require.True(t, ok, genre)
		assert.Equal(t, want, got, genre)
	}

	_, ok := s.Map("Western")
	assert.False(t, ok)
}

func TestBandScale_Unrounded(t *testing.T) {
	s := NewBandScale([]string{"a", "b"}, [2]float64{0, 100}, 0, false, 0.5)

	assert.Equal(t, 50.0, s.Step())
	assert.Equal(t, 50.0, s.Bandwidth())
	start, _ := s.Map("b")
	assert.Equal(t, 50.0, start)
}

func TestBandScale_Empty(t *testing.T) {
	s := NewBandScale(nil, [2]float64{0, 380}, 0.25, true, 0.5)
	_, ok := s.Map("Action")
	assert.False(t, ok)
}
