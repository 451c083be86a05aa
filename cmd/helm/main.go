package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/smasonuk/helm3d"
	"github.com/smasonuk/helm3d/interaction"
	"github.com/smasonuk/helm3d/storefront"
)

var pageBackground = color.RGBA{R: 245, G: 245, B: 240, A: 255}

type Game struct {
	cfg   helm3d.Config
	log   *zap.Logger
	scene *helm3d.Scene
	input *helm3d.InputPoller

	store      *storefront.Storefront
	alerts     *alerts
	form       captureForm
	overlay    *overlayRenderer
	submitting atomic.Bool

	width, height int
	showFPS       bool
}

func NewGame(cfg helm3d.Config, log *zap.Logger) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		log:     log,
		alerts:  &alerts{},
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
		showFPS: cfg.Log.Development,
	}

	err := helm3d.RetryOnce(context.Background(), cfg.InitRetryDelay, func() error {
		scene, err := helm3d.NewScene(helm3d.SceneOptions{
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			Breakpoint: cfg.Layout.Breakpoint,
			Gesture:    cfg.GestureOptions(),
			FrontLabel: cfg.FrontLabel(),
			Background: pageBackground,
			Log:        log.Named("scene"),
		})
		if err != nil {
			if !errors.Is(err, helm3d.ErrNoSurface) {
				log.Warn("scene initialization failed", zap.Error(err))
			}
			return err
		}
		g.scene = scene
		return nil
	})
	if err != nil {
		return nil, err
	}

	if g.overlay, err = newOverlayRenderer(); err != nil {
		g.scene.Close()
		return nil, err
	}

	var product *storefront.Product
	if cfg.Product != nil {
		product = &storefront.Product{Title: cfg.Product.Title, Available: cfg.Product.Available}
	}
	client := storefront.NewClient(&http.Client{Timeout: cfg.Capture.Timeout}, log.Named("capture"))
	g.store = storefront.New(product, client, g.alerts, log.Named("storefront"))
	g.input = helm3d.NewInputPoller(interaction.SystemClock)

	return g, nil
}

func (g *Game) Update() error {
	if err := g.scene.Resize(g.width, g.height); err != nil && !errors.Is(err, helm3d.ErrNoSurface) {
		return err
	}

	overlay := g.store.OverlayOpen()
	for _, ev := range g.input.Poll() {
		// Behind the overlay only releases get through, so a drag that was
		// running when it opened still ends.
		if overlay && ev.Kind != interaction.EventUp && ev.Kind != interaction.EventCancel {
			continue
		}
		g.scene.HandlePointer(ev)
	}

	if overlay {
		g.updateOverlay()
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeyB) {
			if g.store.HandlePurchase() {
				g.alerts.Alert(fmt.Sprintf("%s added to cart", g.store.Product().Title))
			} else {
				g.scene.HandlePointer(interaction.PointerEvent{Kind: interaction.EventCancel})
				g.form.reset()
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF) {
			g.showFPS = !g.showFPS
		}
	}

	g.scene.Update()
	return nil
}

func (g *Game) updateOverlay() {
	if g.submitting.Load() {
		return
	}
	submit, dismiss := g.form.update(formPanel(g.width, g.height))
	if dismiss {
		g.store.CloseOverlay()
		g.form.reset()
		return
	}
	if !submit {
		return
	}

	form := storefront.ContactForm(g.form.email(), g.form.instagram())
	g.log.Debug("submitting capture form")
	g.submitting.Store(true)
	go func() {
		defer g.submitting.Store(false)
		ctx := context.Background()
		if g.cfg.Capture.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.cfg.Capture.Timeout)
			defer cancel()
		}
		_ = g.store.HandleEmailSubmit(ctx, g.cfg.Capture.Action, form)
	}()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.store.OverlayOpen() {
		g.overlay.drawForm(screen, &g.form, g.submitting.Load())
	}
	g.overlay.drawAlert(screen, g.alerts.current())
	if g.showFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %0.2f  mode: %s", ebiten.ActualFPS(), g.scene.Mode()), 4, g.height-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	g.scene.Close()
}

func main() {
	configPath := flag.String("config", "helm.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := helm3d.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "helm: %v\n", err)
		os.Exit(1)
	}

	log, err := helm3d.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "helm: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("initializing", zap.String("config", *configPath), zap.Bool("storefront", cfg.Product != nil))

	game, err := NewGame(cfg, log)
	if errors.Is(err, helm3d.ErrNoSurface) {
		log.Info("no rendering surface, nothing to show")
		return
	}
	if err != nil {
		log.Fatal("initialization failed", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game loop stopped", zap.Error(err))
	}
}
