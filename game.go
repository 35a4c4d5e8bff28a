package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/nonanimation/platypus/common"
	"github.com/nonanimation/platypus/component"
	"github.com/nonanimation/platypus/entity"
	"github.com/nonanimation/platypus/physics"
	"github.com/nonanimation/platypus/prefabs"
)

const (
	baseWidth  = 640
	baseHeight = 480
)

type Game struct {
	sceneFile string
	debug     bool

	spec  *prefabs.SceneSpec
	scene *entity.Scene
	sched *component.HandlerLogic
	world *physics.World

	telemetry *telemetry

	watcher *prefabs.Watcher
	reload  bool

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	lastTick time.Time
}

func NewGame(sceneFile string, debug bool) (*Game, error) {
	g := &Game{
		sceneFile: sceneFile,
		debug:     debug,
		telemetry: newTelemetry(),
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}
	g.pauseUI = newPauseMenu(g)

	if w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts"); err != nil {
		log.Printf("live reload disabled: %v", err)
	} else {
		g.watcher = w
	}
	return g, nil
}

// loadScene builds the world geometry and entity tree from the scene spec.
func (g *Game) loadScene() error {
	spec, err := prefabs.LoadSceneSpec(g.sceneFile)
	if err != nil {
		return err
	}

	world := physics.NewWorld()
	for _, s := range spec.Statics {
		world.AddStaticBox(s.Left, s.Top, s.Right, s.Bottom)
	}

	scene, sched, err := prefabs.BuildScene(spec, world)
	if err != nil {
		return err
	}

	g.spec = spec
	g.scene = scene
	g.world = world
	g.sched = sched
	g.telemetry.attach(scene.Owner())
	g.lastTick = time.Time{}
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		g.lastTick = time.Time{}
		return nil
	}

	g.drainWatcher()
	if g.reload {
		g.reload = false
		if err := g.loadScene(); err != nil {
			log.Printf("scene reload failed: %v", err)
		} else {
			log.Printf("scene %s reloaded", g.sceneFile)
		}
	}

	now := time.Now()
	if g.lastTick.IsZero() {
		g.lastTick = now
		return nil
	}
	// Suspended or debugged processes produce huge deltas; the scheduler
	// caps steps per tick but there is no point feeding it minutes of time.
	deltaT := common.Clamp(float64(now.Sub(g.lastTick))/float64(time.Millisecond), 0, 1000)
	g.lastTick = now

	g.telemetry.beginFrame()
	owner := g.scene.Owner()
	owner.Trigger(entity.CameraUpdate{
		ViewportLeft: 0, ViewportTop: 0,
		ViewportWidth: baseWidth, ViewportHeight: baseHeight,
	})
	owner.Trigger(entity.Tick{DeltaT: deltaT})

	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		clipboard.Write(clipboard.FmtText, []byte(g.telemetryText()))
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("changed: %s", name)
			g.reload = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	for _, s := range g.spec.Statics {
		vector.DrawFilledRect(screen,
			float32(s.Left), float32(s.Top),
			float32(s.Right-s.Left), float32(s.Bottom-s.Top),
			colornames.Dimgray, false)
	}

	for _, e := range g.scene.Entities() {
		g.drawEntity(screen, e)
	}

	ebitenutil.DebugPrint(screen, g.telemetryText())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// drawEntity renders every shape of the entity and recurses into children.
func (g *Game) drawEntity(screen *ebiten.Image, e *entity.Entity) {
	col := colornames.Lightsteelblue
	if e.CollisionGroup != nil {
		col = colornames.Goldenrod
	}
	for _, s := range e.Shapes {
		box := s.AABB()
		vector.DrawFilledRect(screen,
			float32(box.Left), float32(box.Top),
			float32(box.Width), float32(box.Height),
			col, false)
	}
	for _, child := range e.Children {
		g.drawEntity(screen, child)
	}
}

func (g *Game) telemetryText() string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\n%s\nregistered: %d  leftover: %.1fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		g.telemetry.String(),
		len(g.sched.Registered()), g.sched.Leftover())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
