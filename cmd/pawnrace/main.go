package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/qnkhuat/pawnrace/pkg"
	"github.com/qnkhuat/pawnrace/pkg/config"
	"github.com/qnkhuat/pawnrace/pkg/game"
	"github.com/qnkhuat/pawnrace/pkg/gui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logPath := flag.String("log", cfg.LogPath, "path to log file")
	layoutPath := flag.String("layout", cfg.LayoutPath, "JSON layout file, default pawns when empty")
	themeName := flag.String("theme", cfg.Theme, "board theme")
	server := flag.String("server", "", "play a match on this server instead of locally")
	matchId := flag.String("match", "", "match to join on the server, a new one when empty")
	name := flag.String("name", "", "player name shown to the other side")
	lineMode := flag.Bool("line", false, "line mode even on a terminal")
	flag.Parse()

	pkg.InitLog(*logPath, "CLIENT: ")

	theme, err := gui.ImportThemes(*themeName, nil)
	if err != nil {
		log.Printf("%v, using %s", err, gui.ThemeBasic.Name)
		theme = gui.ThemeBasic
	}

	if *server != "" {
		if err := runRemote(*server, *matchId, *name, theme); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	layout := game.DefaultLayout()
	if *layoutPath != "" {
		layout, err = game.LoadLayoutFile(*layoutPath)
		if err != nil {
			log.Printf("Failed to load layout: %v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	half := float64(game.BoardSize)/2 - 0.5
	geometry := game.Geometry{
		Origin:     game.Vec2{X: -half * cfg.SquareSize, Y: -half * cfg.SquareSize},
		SquareSize: cfg.SquareSize,
	}
	session, err := game.NewSession(layout, game.WithGeometry(geometry))
	if err != nil {
		log.Printf("Failed to start game: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *lineMode || !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Println("Line mode")
		if err := pkg.NewConsole(session, os.Stdout).Run(os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log.Println("New local game")
	if err := gui.NewLocal(session, theme).Run(); err != nil {
		log.Printf("GUI stopped: %v", err)
		os.Exit(1)
	}
}

func runRemote(addr, matchId, name string, theme gui.Theme) error {
	cl := pkg.NewClient(theme)
	if err := cl.Connect(addr, matchId, name); err != nil {
		return err
	}
	defer cl.Disconnect()

	written := make(chan struct{})
	go func() {
		cl.HandleWrite()
		close(written)
	}()
	go cl.HandleRead()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cl.GUI.Stop()
	}()

	err := cl.GUI.Run()
	close(cl.Out)
	select {
	case <-written:
	case <-time.After(time.Second):
	}
	return err
}
