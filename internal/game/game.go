// Package game is the desktop host: an Ebiten window whose vsync-bound
// Update drives the particle loop, with a small HUD for the point-size
// and pause controls.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/loop"
	"github.com/iburimskiy/particle-field/internal/particle"
)

var errNotReady = errors.New("sprite renderer not initialized")

type button struct {
	x, y, w, h int
	label      string
	size       float32 // 0 for the pause toggle
}

func (b button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

type Game struct {
	ctrl    *loop.Controller
	sprites *spriteRenderer
	frames  *frameQueue
	click   *clicker
	log     *zap.Logger

	started time.Time
	buttons []button
	hovered int
	pressed int
	lastErr error
}

// New builds the controller for cfg and starts it. Initialization errors
// are returned and nothing is drawn.
func New(cfg config.Config, log *zap.Logger) (*Game, error) {
	log = logging.OrNop(log)
	now := time.Now()

	g := &Game{
		sprites: newSpriteRenderer(config.CanvasWidth, config.CanvasHeight),
		frames:  newFrameQueue(now),
		log:     log,
		started: now,
		buttons: layoutButtons(),
		hovered: -1,
		pressed: -1,
	}

	opts := loop.Options{
		Width:     config.CanvasWidth,
		Height:    config.CanvasHeight,
		Particles: cfg.Particles,
		PointSize: cfg.PointSize,
		Paused:    cfg.Paused,
		Source:    particle.NewSource(cfg.SeedOrClock()),
	}
	if cfg.Sound {
		if err := g.initSound(); err != nil {
			log.Warn("bounce sound disabled", zap.Error(err))
		} else {
			opts.OnBounce = g.click.Trigger
		}
	}

	ctrl, err := loop.New(g.sprites, g.frames, opts, log)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Start(); err != nil {
		return nil, err
	}
	g.ctrl = ctrl
	return g, nil
}

func (g *Game) initSound() error {
	rate := beep.SampleRate(config.ClickSampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	g.click = newClicker(rate)
	speaker.Play(g.click)
	return nil
}

func layoutButtons() []button {
	var bs []button
	x := config.ButtonX
	for _, s := range config.PointSizes {
		bs = append(bs, button{
			x: x, y: config.ButtonY, w: config.ButtonWidth, h: config.ButtonHeight,
			label: fmt.Sprintf("r=%g", s),
			size:  s,
		})
		x += config.ButtonWidth + config.ButtonGap
	}
	return append(bs, button{
		x: x, y: config.ButtonY, w: config.ButtonWidth, h: config.ButtonHeight,
		label: "pause",
	})
}

func (g *Game) buttonAt(x, y int) int {
	for i, b := range g.buttons {
		if b.contains(x, y) {
			return i
		}
	}
	return -1
}

func (g *Game) activate(b button) {
	if b.size == 0 {
		g.toggle()
		return
	}
	g.setPointSize(b.size)
}

func (g *Game) toggle() {
	if err := g.ctrl.ToggleRunning(); err != nil {
		g.lastErr = err
	}
}

func (g *Game) setPointSize(v float32) {
	if v == g.ctrl.PointSize() {
		return
	}
	if err := g.ctrl.SetPointSize(v); err != nil {
		g.lastErr = err
	}
}

var sizeKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

func (g *Game) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()
	g.hovered = g.buttonAt(mouseX, mouseY)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pressed = g.hovered
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.pressed >= 0 && g.pressed == g.hovered {
			g.activate(g.buttons[g.pressed])
		}
		g.pressed = -1
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggle()
	}
	for i, k := range sizeKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.setPointSize(config.PointSizes[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.frames.run(time.Now())
	return g.ctrl.Err()
}

func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.sprites.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
	g.drawButtons(screen)

	status := fmt.Sprintf("%s | r=%g | %d particles | %s | Space: pause, 1-4: size, Esc/Q: quit",
		g.ctrl.State(), g.ctrl.PointSize(), g.ctrl.Particles().Len(), formatDuration(time.Since(g.started)))
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 8)
}

func (g *Game) drawButtons(screen *ebiten.Image) {
	for i, b := range g.buttons {
		base := hsv(float64(i)*360/float64(len(g.buttons)), 0.5, 0.75)
		label := b.label
		active := b.size == g.ctrl.PointSize()
		if b.size == 0 {
			base = color.RGBA{R: 100, G: 120, B: 160, A: 255}
			active = g.ctrl.State() == loop.Paused
			if active {
				label = "play"
			}
		}

		bg := shade(base, 0.6)
		switch {
		case i == g.pressed:
			bg = shade(base, 0.4)
		case active || i == g.hovered:
			bg = base
		}
		if g.click != nil && b.size != 0 && active {
			bg = shade(base, 0.75+g.click.level())
		}

		vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), bg, false)
		vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

		textX := b.x + (b.w-len(label)*6)/2
		textY := b.y + (b.h-16)/2
		ebitenutil.DebugPrintAt(screen, label, textX, textY)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.CanvasWidth, config.CanvasHeight
}

// Close releases GPU state and silences the speaker.
func (g *Game) Close() {
	g.ctrl.Stop()
	if g.click != nil {
		speaker.Clear()
	}
	g.log.Info("particle field closed", zap.Int("frames", g.ctrl.Frames()))
}
