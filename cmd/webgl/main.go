//go:build js && wasm

// Command webgl runs the particle field in a browser on <canvas id="canvas">.
// It exports particles.setPointSize(v) and particles.toggleRunning() for the
// page's controls.
package main

import (
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/gpu/webgl"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/loop"
	"github.com/iburimskiy/particle-field/internal/particle"
	"github.com/iburimskiy/particle-field/internal/render"
)

// animationFrames schedules through window.requestAnimationFrame.
type animationFrames struct {
	window js.Value
}

func (a animationFrames) RequestFrame(fn func(ts float64)) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		cb.Release()
		fn(args[0].Float())
		return nil
	})
	a.window.Call("requestAnimationFrame", cb)
}

func main() {
	log, err := logging.New("info")
	if err != nil {
		panic(err)
	}

	gl, err := webgl.New("canvas")
	if err != nil {
		log.Error("particle field setup aborted", zap.Error(err))
		return
	}

	cfg := config.Default()
	opts := loop.Options{
		Width:     config.CanvasWidth,
		Height:    config.CanvasHeight,
		Particles: cfg.Particles,
		PointSize: cfg.PointSize,
		Source:    particle.NewSource(uint64(time.Now().UnixNano())),
	}
	r := render.New(gl, config.CanvasWidth, config.CanvasHeight, log)
	ctrl, err := loop.New(r, animationFrames{window: js.Global()}, opts, log)
	if err != nil {
		log.Error("particle field setup aborted", zap.Error(err))
		return
	}
	if err := ctrl.Start(); err != nil {
		log.Error("particle field setup aborted", zap.Error(err))
		return
	}

	api := map[string]any{
		"setPointSize": js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) < 1 {
				return "missing point size"
			}
			if err := ctrl.SetPointSize(float32(args[0].Float())); err != nil {
				log.Warn("point size rejected", zap.Error(err))
				return err.Error()
			}
			return nil
		}),
		"toggleRunning": js.FuncOf(func(this js.Value, args []js.Value) any {
			if err := ctrl.ToggleRunning(); err != nil {
				return err.Error()
			}
			return ctrl.State().String()
		}),
	}
	js.Global().Set("particles", js.ValueOf(api))

	select {}
}
