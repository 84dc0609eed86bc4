package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/randpoly/common"
	"github.com/milk9111/randpoly/prefabs"
)

type options struct {
	debug       bool
	baseMonitor bool
	scene       string
	seed        string
}

func main() {
	var opts options
	flag.BoolVar(&opts.debug, "debug", false, "start with the physics debug overlay enabled")
	flag.BoolVar(&opts.baseMonitor, "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.StringVar(&opts.scene, "scene", prefabs.DefaultScene, "scene file in prefabs/")
	flag.StringVar(&opts.seed, "seed", "", "override the scene seed (number or any string)")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	if opts.baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.ScreenWidth, common.ScreenHeight)
	ebiten.SetWindowTitle("randpoly")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(opts.scene, opts.seed, opts.debug)
	if err != nil {
		return err
	}
	defer game.Close()

	return ebiten.RunGame(game)
}
