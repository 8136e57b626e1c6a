package headless

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/bnema/moto/internal/ui/input"
)

func TestNew_ReportsGeometry(t *testing.T) {
	q := input.NewQueue()
	New(q, 800, 600)

	evs := q.Drain()
	require.Len(t, evs, 2)
	assert.Equal(t, entity.NativeResized, evs[0].Kind)
	assert.Equal(t, entity.Size{Width: 800, Height: 600}, evs[0].Size)
	assert.Equal(t, entity.NativeFocused, evs[1].Kind)
}

func TestWindow_PresentBeforeCreateFails(t *testing.T) {
	w := New(nil, 10, 10)
	err := w.Present(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	assert.ErrorIs(t, err, entity.ErrPresentation)
	assert.Nil(t, w.Frame())
}

func TestWindow_PresentCopiesFrame(t *testing.T) {
	w := New(nil, 4, 4)
	require.NoError(t, w.Create(4, 4, 1))

	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 2, color.RGBA{R: 255, A: 255})
	require.NoError(t, w.Present(src))

	src.Set(2, 2, color.RGBA{B: 255, A: 255})
	got := w.Frame()
	require.NotNil(t, got)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, got.RGBAAt(2, 2))
	assert.Equal(t, 1, w.Presented())
}

func TestWindow_DestroyAndTitle(t *testing.T) {
	w := New(nil, 4, 4)
	assert.Error(t, w.Create(0, 4, 1))
	require.NoError(t, w.Create(4, 4, 2))
	w.SetTitle("moto")
	assert.Equal(t, "moto", w.Title())

	w.Destroy()
	w.Destroy()
	assert.ErrorIs(t, w.Present(image.NewRGBA(image.Rect(0, 0, 4, 4))), entity.ErrPresentation)
}
