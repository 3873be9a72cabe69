package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/pipsbluff/pipsbluff/internal/config"
	"github.com/pipsbluff/pipsbluff/internal/logging"
	"github.com/pipsbluff/pipsbluff/internal/types"
	"github.com/pipsbluff/pipsbluff/pkg/entities"
	"github.com/pipsbluff/pipsbluff/pkg/games/poker"
	"github.com/pipsbluff/pipsbluff/pkg/repositories/round"
	"github.com/pipsbluff/pipsbluff/pkg/repositories/user"
	"github.com/pipsbluff/pipsbluff/pkg/scheduler"
	"github.com/pipsbluff/pipsbluff/pkg/services/auth"
	"github.com/pipsbluff/pipsbluff/pkg/services/statistics"
)

// archiveBatch bounds how many rounds each archive pass re-indexes.
const archiveBatch = 500

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel))

	userRepo, roundRepo, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer cleanup()

	// Background archive sync when Elasticsearch is configured
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if esRepo, ok := roundRepo.(*round.ElasticsearchRepository); ok {
		sched := scheduler.NewScheduler(logger)
		sched.AddTask("round-archive", cfg.ArchiveInterval, func(ctx context.Context) error {
			return esRepo.Archive(ctx, archiveBatch)
		})
		sched.Start(ctx)
		defer sched.Stop()
	}

	authService := auth.NewService(userRepo)
	statsService := statistics.NewService(roundRepo)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Pips ", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Bluff", pterm.FgDarkGray.ToStyle()),
	).Render()

	account, err := signIn(ctx, authService)
	if err != nil {
		logger.LogError(err)
		os.Exit(1)
	}
	pterm.Success.Printfln("Welcome, %s!", account.Username)

	playSession(ctx, cfg, logger, account, roundRepo)

	showStats(ctx, statsService, account.Username)
}

// buildRepositories wires the configured storage backends. The cleanup
// function closes whatever was opened.
func buildRepositories(cfg *config.Config, logger *logging.Logger) (user.Repository, round.Repository, func(), error) {
	var userRepo user.Repository
	var roundRepo round.Repository
	closers := make([]func() error, 0, 2)

	if cfg.StorageType == config.StorageSQLite {
		u, err := user.NewSQLiteRepository(cfg.DatabasePath())
		if err != nil {
			return nil, nil, nil, err
		}
		r, err := round.NewSQLiteRepository(cfg.DatabasePath())
		if err != nil {
			u.Close()
			return nil, nil, nil, err
		}
		closers = append(closers, u.Close, r.Close)
		userRepo, roundRepo = u, r
		logger.Info("Using SQLite storage at %s", cfg.DatabasePath())
	} else {
		userRepo = user.NewMemoryRepository()
		roundRepo = round.NewMemoryRepository()
		logger.Info("Using in-memory storage (accounts and history are lost on exit)")
	}

	if cfg.ArchiveEnabled() {
		esRepo, err := round.NewElasticsearchRepository(roundRepo, &round.ElasticsearchConfig{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: cfg.ESIndexPrefix,
		})
		if err != nil {
			logger.Warn("Elasticsearch archive unavailable, continuing without it: %v", err)
		} else {
			roundRepo = esRepo
			logger.Info("Round results archived to %s", cfg.ESURL)
		}
	}

	cleanup := func() {
		for _, close := range closers {
			if err := close(); err != nil {
				logger.Warn("Error closing storage: %v", err)
			}
		}
	}
	return userRepo, roundRepo, cleanup, nil
}

// signIn loops until the player has logged in or registered.
func signIn(ctx context.Context, authService *auth.Service) (*entities.User, error) {
	for {
		choice, _ := pterm.DefaultInteractiveSelect.
			WithOptions([]string{"Login", "Register", "Quit"}).
			Show("Welcome to Pips Bluff")

		switch choice {
		case "Login":
			username, _ := pterm.DefaultInteractiveTextInput.Show("Username")
			password, _ := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")

			account, err := authService.Login(ctx, username, password)
			if err != nil {
				if types.IsGameError(err, types.ErrInvalidCredentials) || types.IsGameError(err, types.ErrMissingFields) {
					pterm.Error.Println(err.Error())
					continue
				}
				return nil, err
			}
			return account, nil

		case "Register":
			username, _ := pterm.DefaultInteractiveTextInput.Show("Username")
			email, _ := pterm.DefaultInteractiveTextInput.Show("Email")
			password, _ := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
			confirm, _ := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Confirm password")

			account, err := authService.Register(ctx, username, email, password, confirm)
			if err != nil {
				var gameErr *types.GameError
				if types.As(err, &gameErr) && gameErr.Code != types.ErrDatabaseError && gameErr.Code != types.ErrInternalError {
					pterm.Error.Println(err.Error())
					continue
				}
				return nil, err
			}
			pterm.Success.Println("Registration successful")
			return account, nil

		default:
			os.Exit(0)
		}
	}
}

// playSession runs deal/discard/evaluate rounds until the player quits.
func playSession(ctx context.Context, cfg *config.Config, logger *logging.Logger, account *entities.User, roundRepo round.Repository) {
	engine := poker.NewEngine()
	engine.InitializeGame(cfg.AssetsPath)

	for {
		hand := engine.DealHand(poker.DefaultHandSize)
		renderHand(hand)

		discards := chooseDiscards(hand)
		if len(discards) > 0 {
			removed := engine.DiscardCards(discards)
			replacements := engine.DrawCards(len(removed))
			hand.Add(replacements...)
			pterm.Info.Printfln("Discarded %d, drew %d", len(removed), len(replacements))
			renderHand(hand)
		}

		result := engine.EvaluateHand()
		pterm.DefaultBox.
			WithTitle("Result").
			WithTitleTopCenter().
			Printfln("%s: %d points\nTotal score: %d", result.Category, result.Score, engine.Score())

		saveRound(ctx, logger, roundRepo, account.Username, hand, result)

		again, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultValue(true).
			Show("Deal another hand?")
		if !again {
			return
		}
	}
}

func renderHand(hand *poker.Hand) {
	display := make([]string, 0, hand.Size())
	for i, c := range hand.Cards {
		display = append(display, fmt.Sprintf("[%d] %s", i+1, c))
	}
	pterm.DefaultBox.WithTitle("Your hand").WithTitleTopLeft().Println(pterm.LightCyan(join(display)))
}

func join(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "  "
		}
		out += p
	}
	return out
}

// chooseDiscards asks for cards to throw away, once per hand.
func chooseDiscards(hand *poker.Hand) []int {
	options := make([]string, 0, hand.Size())
	for i, c := range hand.Cards {
		options = append(options, fmt.Sprintf("[%d] %s", i+1, c))
	}

	picked, _ := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		Show("Select cards to discard (none to stand pat)")

	indices := make([]int, 0, len(picked))
	for _, p := range picked {
		for i, opt := range options {
			if p == opt {
				indices = append(indices, i)
			}
		}
	}
	return indices
}

func saveRound(ctx context.Context, logger *logging.Logger, roundRepo round.Repository, username string, hand *poker.Hand, result poker.Result) {
	if result.Category == poker.Invalid {
		return
	}

	cardNames := make([]string, 0, hand.Size())
	for _, c := range hand.Cards {
		cardNames = append(cardNames, c.String())
	}

	err := roundRepo.SaveResult(ctx, &entities.RoundResult{
		Username: username,
		Category: string(result.Category),
		Score:    result.Score,
		Cards:    cardNames,
	})
	if err != nil {
		logger.Warn("Failed to save round result: %v", err)
	}
}

func showStats(ctx context.Context, statsService *statistics.Service, username string) {
	stats, err := statsService.GetPlayerStats(ctx, username)
	if err != nil || stats.RoundsPlayed == 0 {
		return
	}

	pterm.DefaultBox.
		WithTitle("Session history").
		WithTitleTopCenter().
		Printfln("Rounds played: %d\nTotal score: %d\nBest hand: %s (%d)",
			stats.RoundsPlayed, stats.TotalScore, stats.BestCategory, stats.BestScore)
}
