package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-5))
	assert.Equal(t, 0.0, ClampPercent(math.NaN()))
	assert.Equal(t, 42.5, ClampPercent(42.5))
	assert.Equal(t, 100.0, ClampPercent(250))
}

func TestProgressFullyWatched(t *testing.T) {
	assert.True(t, Progress{Watched: true, Percent: 95}.FullyWatched())
	assert.False(t, Progress{Watched: true, Percent: 94.99}.FullyWatched())
}

func TestVideoRecordURLs(t *testing.T) {
	v := VideoRecord{ID: "dQw4w9WgXcQ"}
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", v.WatchURL())
	assert.Equal(t, DefaultThumbnailURL, v.Thumbnail())

	v.ThumbnailURL = "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg"
	assert.Equal(t, v.ThumbnailURL, v.Thumbnail())
}
