package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ChrisBuilds/terminaltexteffects-sub001/canvas"
	"github.com/ChrisBuilds/terminaltexteffects-sub001/effects"
)

var (
	effectFlag = flag.String("effect", "expand", "Effect to run (see -list)")
	listFlag   = flag.Bool("list", false, "List available effects and exit")
	configFlag = flag.String("config", "", "Path to a YAML options file")
	fpsFlag    = flag.Int("fps", 30, "Playback frame rate")
	colorFlag  = flag.String("color", "", "Color mode: truecolor, 256, none")
	seedFlag   = flag.Int64("seed", 0, "Random seed (overrides config)")
	widthFlag  = flag.Int("width", 0, "Canvas width (0 = terminal width)")
	heightFlag = flag.Int("height", 0, "Canvas height (0 = terminal height)")
	dumpFlag   = flag.Bool("dump", false, "Print every frame instead of playing interactively")
)

var log = logrus.New()

// painter is satisfied by every effect; interactive playback draws the
// compositor straight onto a tcell screen instead of parsing ANSI frames.
type painter interface {
	Canvas() *canvas.Canvas
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input-file]\n\nAnimates text from input-file (or stdin) in the terminal.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listFlag {
		fmt.Println(strings.Join(effects.Names(), "\n"))
		return
	}

	opts, err := effects.LoadOptions(*configFlag)
	if err != nil {
		log.WithField("config", *configFlag).Fatal(err)
	}
	if *colorFlag != "" {
		opts.ColorMode = *colorFlag
	}
	if *seedFlag != 0 {
		opts.Seed = *seedFlag
	}
	if *widthFlag != 0 {
		opts.Width = *widthFlag
	}
	if *heightFlag != 0 {
		opts.Height = *heightFlag
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	text, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if strings.TrimSpace(text) == "" {
		log.Fatal("input is empty")
	}

	fx, err := effects.New(*effectFlag, opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := fx.Init(text); err != nil {
		log.WithField("effect", *effectFlag).Fatal(err)
	}

	fps := *fpsFlag
	if fps < 1 {
		fps = 30
	}

	if !*dumpFlag && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := playInteractive(fx, fps); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := playDump(fx, *dumpFlag); err != nil {
		log.Fatal(err)
	}
}

// readInput reads the text to animate from path, or stdin when path is "".
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// playInteractive runs the effect on a tcell screen at the requested frame
// rate. Any key skips to the settled frame; a second key exits.
func playInteractive(fx effects.Effect, fps int) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Panic recovery: restore the terminal before the stack trace prints.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\ncrashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
		screen.Fini()
	}()

	keys := make(chan struct{}, 1)
	go func() {
		for {
			ev := screen.PollEvent()
			switch ev.(type) {
			case *tcell.EventKey:
				keys <- struct{}{}
			case nil:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	pv, ok := fx.(painter)
	if !ok {
		return fmt.Errorf("effect does not expose a canvas")
	}

	skipping := false
	for {
		_, done, err := fx.Step()
		if err != nil {
			return err
		}
		screen.Clear()
		pv.Canvas().Paint(screen)
		screen.Show()
		if done {
			break
		}
		if skipping {
			continue
		}
		select {
		case <-keys:
			skipping = true
		case <-ticker.C:
		}
	}

	// Hold the settled frame until a key arrives.
	if !skipping {
		<-keys
	} else {
		select {
		case <-keys:
		default:
		}
		<-keys
	}
	return nil
}

// playDump writes ANSI frames to stdout. With dump set every frame is
// printed, separated by blank lines; otherwise only the settled frame.
func playDump(fx effects.Effect, dump bool) error {
	for {
		frame, done, err := fx.Step()
		if err != nil {
			return err
		}
		if dump {
			fmt.Println(frame)
			fmt.Println()
		}
		if done {
			if !dump {
				fmt.Println(frame)
			}
			return nil
		}
	}
}
