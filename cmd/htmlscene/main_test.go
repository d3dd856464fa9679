package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vconsole/capture"
	"github.com/plus3/vconsole/config"
	"github.com/plus3/vconsole/console"
	"github.com/plus3/vconsole/interact"
)

func TestSceneRunsWithoutCapture(t *testing.T) {
	cfg := config.Default()
	var out bytes.Buffer
	log := zerolog.New(&out)

	denied := eris.New("permission denied")
	refusing := capture.AcquirerFunc(func(context.Context) (capture.Track, error) { return nil, denied })

	var capturer *capture.Capturer
	require.NotPanics(t, func() {
		capturer = startCapture(context.Background(), cfg, refusing, map[string]*capture.Slot{}, log)
	})
	assert.Nil(t, capturer)
	assert.Contains(t, out.String(), "capture disabled")
	assert.Contains(t, out.String(), "permission denied")

	world, cube := newWorld(cfg)
	clicks := &Clicks{}
	page, err := newPage(cfg, clicks)
	require.NoError(t, err)
	c := console.New()
	defer c.Close()
	proxy := interact.New(cfg.Layout(), page, world)

	require.NoError(t, registerEntities(c, proxy, capturer, &Metrics{}, clicks, cube))
	_, ok := c.Entity("frames")
	assert.False(t, ok, "no frame counter without a capturer")
	_, ok = c.Entity("fps")
	assert.True(t, ok)
	require.NotPanics(t, c.Tick)
}
