// ChessPlay - a two-player chess board built with Ebitengine
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
	"github.com/hailam/chessrules/internal/ui"
)

var memory = flag.Bool("memory", false, "keep preferences and results in memory only")

func main() {
	flag.Parse()

	var (
		store *storage.Storage
		err   error
	)
	if *memory {
		store, err = storage.OpenInMemory()
	} else if store, err = storage.NewStorage(); err != nil {
		log.Printf("Warning: failed to open storage, results will not be kept: %v", err)
		store, err = storage.OpenInMemory()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Printf("Warning: failed to load preferences: %v", err)
	}

	sess := session.New(session.ConfigFromPreferences(prefs), store)
	game := ui.NewGame(sess, store, prefs)
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("ChessPlay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
