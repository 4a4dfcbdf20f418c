package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/render"
	"github.com/lixenwraith/vi-snake/store"
)

var (
	configFlag      = flag.String("config", "", "Config file (default: user config dir/vi-snake/config.toml)")
	difficultyFlag  = flag.String("difficulty", "", "Starting difficulty: easy, normal, hard, extreme or 1-4")
	muteFlag        = flag.Bool("mute", false, "Start with sound off")
	storeFlag       = flag.String("store", "", "High score backend: file, redis, postgres, memory")
	debugFlag       = flag.Bool("debug", false, "Write a debug log to logs/vi-snake.log")
	printConfigFlag = flag.Bool("print-config", false, "Print the effective configuration and exit")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg, *difficultyFlag, *storeFlag, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flag: %v\n", err)
		os.Exit(2)
	}

	if *printConfigFlag {
		data, err := cfg.Encode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode config: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	keys, err := cfg.KeyTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid key bindings: %v\n", err)
		os.Exit(1)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Unavailable backends degrade to memory; Open logs the cause
	st, _ := store.Open(ctx, cfg.Store)
	defer st.Close()

	sink, closeSink := audio.NewSink(&cfg.Audio)
	defer closeSink()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashReset(screen.Fini)
	// Normal exit terminal cleanup
	defer func() {
		core.SetCrashReset(nil)
		screen.Fini()
	}()
	screen.HideCursor()

	renderer := render.NewRenderer(screen)
	session := engine.NewSession(
		engine.WithState(game.NewState(cfg.Game.Difficulty, nil)),
		engine.WithStore(st),
		engine.WithSink(sink),
		engine.WithSound(!*muteFlag),
		engine.WithPresenter(renderer),
	)

	runErr := make(chan error, 1)
	core.Go(func() { runErr <- session.Run(ctx) })

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	redraw := time.NewTicker(constants.IdleRedrawInterval)
	defer redraw.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in := keys.Map(input.FromTcell(ev))
				if in.Type == input.IntentNone {
					continue
				}
				if !session.Submit(in) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
				renderer.Redraw()
			}

		case <-redraw.C:
			renderer.Redraw()

		case err := <-runErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("session ended: %v", err)
			}
			return
		}
	}
}
