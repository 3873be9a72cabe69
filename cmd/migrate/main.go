package main

import (
	"fmt"
	"os"

	"github.com/pipsbluff/pipsbluff/internal/config"
	"github.com/pipsbluff/pipsbluff/pkg/repositories/round"
	"github.com/pipsbluff/pipsbluff/pkg/repositories/user"
)

// Creates the SQLite schema (users and rounds tables) so the game can
// be pointed at a ready database. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	userRepo, err := user.NewSQLiteRepository(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating users schema: %v\n", err)
		os.Exit(1)
	}
	defer userRepo.Close()

	roundRepo, err := round.NewSQLiteRepository(cfg.DatabasePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating rounds schema: %v\n", err)
		os.Exit(1)
	}
	defer roundRepo.Close()

	fmt.Printf("database ready at %s\n", cfg.DatabasePath())
}
