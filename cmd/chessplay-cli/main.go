package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/hailam/chessrules/internal/cli"
	"github.com/hailam/chessrules/internal/session"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	minutes   = flag.Int("minutes", 0, "minutes per side (default: saved preference)")
	increment = flag.Int("increment", -1, "increment in seconds per move (default: saved preference)")
	dbDir     = flag.String("db", "", `database directory, or ":memory:" to keep nothing`)
	strict    = flag.Bool("strict-promotion", false, "require an explicit promotion piece")
	logFile   = flag.String("log", "", "write logs to this file instead of discarding them")
	noColor   = flag.Bool("no-color", false, "disable colored output")
)

func main() {
	flag.Parse()

	if err := initLog(*logFile); err != nil {
		log.Fatal("could not open log file: ", err)
	}
	if *noColor {
		color.NoColor = true
	}

	store, err := openStorage(*dbDir)
	if err != nil {
		log.Fatal("could not open storage: ", err)
	}
	defer store.Close()

	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Printf("[MAIN] using default preferences: %v", err)
		prefs = storage.DefaultPreferences()
	}

	cfg := session.ConfigFromPreferences(prefs)
	if *minutes > 0 {
		cfg.TimeControl = time.Duration(*minutes) * time.Minute
	}
	if *increment >= 0 {
		cfg.Increment = time.Duration(*increment) * time.Second
	}
	cfg.StrictPromotion = cfg.StrictPromotion || *strict

	sess := session.New(cfg, store)
	fmt.Printf("Hello %s. Type help for commands, play to start.\n", prefs.Username)

	done := make(chan struct{})
	go watchClock(sess, done)

	c := cli.New(sess, os.Stdin, os.Stdout)
	c.SetFlip(prefs.FlipBoard)
	c.SetResults(store)
	if err := c.Run(); err != nil {
		log.Printf("[MAIN] input: %v", err)
	}
	close(done)

	prefs.LastPlayed = time.Now()
	if err := store.SavePreferences(prefs); err != nil {
		log.Printf("[MAIN] failed to save preferences: %v", err)
	}
	if stats, err := store.LoadStats(); err == nil {
		fmt.Printf("%d games played, %d white wins, %d black wins, %d draws\n",
			stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws)
	}
}

// watchClock announces a flag fall as soon as it happens.
func watchClock(sess *session.Session, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var announced uuid.UUID
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			out := sess.Tick()
			id := sess.ID()
			if out.Over && out.Termination == session.Timeout && id != announced {
				fmt.Println(out)
				announced = id
			}
		}
	}
}

func openStorage(dir string) (*storage.Storage, error) {
	switch dir {
	case "":
		return storage.NewStorage()
	case ":memory:":
		return storage.OpenInMemory()
	}
	return storage.Open(dir)
}

func initLog(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	log.SetPrefix("[chessplay-cli] ")
	return nil
}
