package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowsAt(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	w := windowsAt(now)

	assert.Equal(t, now.AddDate(0, 0, -30), w.series.From)
	assert.True(t, w.series.To.IsZero(), "la serie no tiene límite superior")

	assert.Equal(t, now.AddDate(0, 0, -7), w.current.From)
	assert.True(t, w.current.To.IsZero())

	assert.Equal(t, now.AddDate(0, 0, -14), w.previous.From)
	assert.Equal(t, w.current.From, w.previous.To, "las semanas son contiguas y no se solapan")
}
