package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/qnkhuat/pawnrace/pkg"
	"github.com/qnkhuat/pawnrace/pkg/config"
	"github.com/qnkhuat/pawnrace/pkg/game"
	"github.com/qnkhuat/pawnrace/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	flag.StringVar(&cfg.LogPath, "log", cfg.LogPath, "path to log file")
	flag.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "JSON layout file for every match")
	flag.StringVar(&cfg.ServerAddr, "addr", cfg.ServerAddr, "address of the match protocol")
	flag.StringVar(&cfg.SSHAddr, "ssh", cfg.SSHAddr, "address of the ssh front door, empty to disable")
	flag.StringVar(&cfg.HostKeyPath, "hostkey", cfg.HostKeyPath, "ssh host key")
	flag.StringVar(&cfg.StorePath, "store", cfg.StorePath, "sqlite file for finished games")
	showResults := flag.Int("results", 0, "print the N most recent results from the store and exit")
	flag.Parse()

	if *showResults > 0 {
		db, err := store.Open(cfg.StorePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = printResults(context.Background(), os.Stdout, db, *showResults)
		db.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	pkg.InitLog(cfg.LogPath, "SERVER: ")
	log.Println("Server started")

	layout := game.DefaultLayout()
	if cfg.LayoutPath != "" {
		if layout, err = game.LoadLayoutFile(cfg.LayoutPath); err != nil {
			log.Printf("Failed to load layout: %v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	var results pkg.ResultRecorder
	if cfg.StorePath != "" {
		db, err := store.Open(cfg.StorePath)
		if err != nil {
			log.Printf("Failed to open store: %v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer db.Close()
		results = db
	}

	s, err := pkg.NewServer(cfg, layout, results)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer s.Close()

	go s.CleanIdleMatches()

	if cfg.SSHAddr != "" {
		go func() {
			if err := s.ListenAndServeSSH(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	listener, err := net.Listen("tcp", cfg.ServerAddr)
	if err != nil {
		log.Printf("Failed to listen: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("Listening at %s", cfg.ServerAddr)

	bold := color.New(color.FgGreen, color.Bold)
	bold.Printf("pawnrace server listening on %s\n", cfg.ServerAddr)
	if cfg.SSHAddr != "" {
		color.Cyan("ssh front door on %s", cfg.SSHAddr)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Println("Shutting down")
		listener.Close()
	}()

	if err := s.Serve(listener); err != nil {
		log.Printf("Serve: %v", err)
	}
}

func printResults(ctx context.Context, w io.Writer, db *store.Store, n int) error {
	results, err := db.ListResults(ctx, n)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "no finished games")
		return nil
	}
	winner := color.New(color.FgGreen, color.Bold)
	for _, r := range results {
		fmt.Fprintf(w, "%s  %-24s ", r.FinishedAt.Local().Format("2006-01-02 15:04"), r.MatchID)
		winner.Fprintf(w, "%-5s", r.Winner)
		fmt.Fprintf(w, " in %d plies\n", r.Plies)
	}
	return nil
}
