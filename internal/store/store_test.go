package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/ellipse/internal/figure"
	"github.com/inamate/ellipse/internal/geometry"
)

func TestStoreDispatch(t *testing.T) {
	st := New(NewReducer(figure.DefaultCanvas))
	assert.Equal(t, Initial().View(), st.View())

	v := st.Dispatch(ChangeWidth(geometry.Int(150)))
	assert.Equal(t, 150.0, v.Figure.Width)
	assert.Equal(t, 2, v.HistoryLength)
	assert.Equal(t, v, st.View())
}

func TestStoreSubscribe(t *testing.T) {
	st := New(NewReducer(figure.DefaultCanvas))

	var got []View
	unsubscribe := st.Subscribe(func(v View) {
		got = append(got, v)
	})

	st.Dispatch(ChangeWidth(geometry.Int(150)))
	st.Dispatch(UndoRedo(DirectionUndo))
	require.Len(t, got, 2)
	assert.Equal(t, 150.0, got[0].Figure.Width)
	assert.True(t, got[1].CanRedo)

	unsubscribe()
	st.Dispatch(UndoRedo(DirectionRedo))
	assert.Len(t, got, 2)
}

func TestStoreConcurrentDispatch(t *testing.T) {
	st := New(NewReducer(figure.DefaultCanvas))

	var mu sync.Mutex
	var seen []int
	st.Subscribe(func(v View) {
		mu.Lock()
		seen = append(seen, v.HistoryLength)
		mu.Unlock()
	})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st.Dispatch(ChangeWidth(geometry.Int(1000 + i)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n+1, st.State().History.Len())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, n)
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1], seen[i], "listeners see dispatches in order")
	}
}

func TestDecodeAction(t *testing.T) {
	a, err := DecodeAction([]byte(`{"type":"MOVE_FIGURE","x":120,"y":"80","save":true}`))
	require.NoError(t, err)
	assert.Equal(t, MoveFigure("120", "80", true), a)

	a, err = DecodeAction([]byte(`{"type":"UNDO_REDO","action":"undo"}`))
	require.NoError(t, err)
	assert.Equal(t, UndoRedo(DirectionUndo), a)

	a, err = DecodeAction([]byte(`{"type":"CHANGE_WIDTH","width":null}`))
	require.NoError(t, err)
	assert.Equal(t, ChangeWidth(""), a)

	_, err = DecodeAction([]byte(`{"type":"SPIN"}`))
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = DecodeAction([]byte(`{"type":`))
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = DecodeAction([]byte(`{"type":"MOVE_FIGURE","x":true}`))
	assert.ErrorIs(t, err, ErrInvalidAction)
}
