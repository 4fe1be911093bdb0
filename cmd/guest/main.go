package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/dashboard"
	"fintrack/internal/guest"
	"fintrack/internal/log"
	"fintrack/internal/seed"
	"fintrack/internal/storage"
)

func main() {
	now := time.Now()
	month := flag.Int("month", int(now.Month()), "dashboard month (1-12)")
	year := flag.Int("year", now.Year(), "dashboard year")
	resetMonth := flag.Bool("reset-month", false, "mark every planned expense unpaid before printing")
	user := flag.String("user", "", "user id, defaults to GUEST_USER_ID")
	addExpense := flag.String("add-expense", "", "record an expense with this name before printing")
	amount := flag.String("amount", "", "amount of the new expense, dot or comma decimals")
	category := flag.String("category", "", "category name of the new expense")
	flag.Parse()

	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	userID := cfg.GuestUserID
	if *user != "" {
		userID = *user
	}
	if !guest.IsGuestUser(userID) {
		logger.Error("Signed-in users are served by the remote API", "user_id", userID)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, _ := cli.GracefulShutdown(logger, 10*time.Second, nil)
	ctx = log.NewContext(ctx, logger)

	opts := runOptions{
		userID:     userID,
		year:       *year,
		month:      *month,
		resetMonth: *resetMonth,
		expense:    expenseInput{name: *addExpense, amount: *amount, category: *category},
	}
	if err := run(ctx, cfg, backendCfg, logger, opts); err != nil {
		logger.Error("Guest session failed", log.FieldError, err)
		os.Exit(1)
	}
}

type runOptions struct {
	userID      string
	year, month int
	resetMonth  bool
	expense     expenseInput
}

type expenseInput struct {
	name     string
	amount   string
	category string
}

func run(ctx context.Context, cfg *config.Config, backendCfg backend.Config, logger *log.Logger, opts runOptions) error {
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("create session backend: %w", err)
	}
	defer func() {
		if res.Cleanup == nil {
			return
		}
		if err := res.Cleanup(); err != nil {
			logger.Error("Session cleanup failed", log.FieldError, err)
		}
	}()

	gen := seed.New()
	gen.Owner = opts.userID
	store := storage.NewSnapshotStore(res.KV, cfg.SessionKey, gen.Snapshot, logger)

	repoOpts := []guest.Option{
		guest.WithLogger(logger),
		guest.WithOwner(opts.userID),
		guest.WithSchemaVersion(cfg.SchemaVersion),
		guest.WithSeed(gen),
	}
	if res.Publisher != nil {
		repoOpts = append(repoOpts, guest.WithPublisher(res.Publisher))
	}
	repo := guest.New(ctx, store, repoOpts...)

	memo := cache.NewLRUCache[dashboard.Dashboard](cfg.DashboardCacheSize, cfg.DashboardCacheTTL)
	manager := cache.NewManager(logger)
	manager.Register(memo)
	if cfg.DashboardCacheTTL > 0 {
		manager.StartCleanup(cfg.DashboardCacheTTL)
		defer manager.Stop()
	}

	if opts.resetMonth {
		repo.MarkAllUnpaid(ctx)
		logger.Info("Planned expenses marked unpaid", log.FieldRevision, repo.Revision())
	}

	if opts.expense.name != "" {
		e, err := recordExpense(ctx, repo, opts.expense, time.Now())
		if err != nil {
			return err
		}
		logger.Info("Expense recorded",
			log.FieldID, e.ID,
			log.FieldAmount, e.Amount.String(),
			log.FieldCategory, e.CategoryName)
	}

	board, err := dashboard.NewBuilder(repo, memo, logger).Build(ctx, opts.year, opts.month)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(board); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	return nil
}

type expenseRecorder interface {
	Categories(ctx context.Context) []core.Category
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
}

// recordExpense parses the typed amount and resolves the category by name,
// ignoring case. An empty category records an uncategorised expense.
func recordExpense(ctx context.Context, repo expenseRecorder, in expenseInput, date time.Time) (core.Expense, error) {
	amount, err := core.ParseAmount(in.amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", in.amount, err)
	}

	e := core.Expense{Name: in.name, Amount: amount, Date: date}
	if in.category != "" {
		categories := repo.Categories(ctx)
		i := slices.IndexFunc(categories, func(c core.Category) bool {
			return strings.EqualFold(c.Name, strings.TrimSpace(in.category))
		})
		if i < 0 {
			return core.Expense{}, fmt.Errorf("%w: %s", core.ErrCategoryNotFound, in.category)
		}
		e.CategoryID = categories[i].ID
	}

	created, err := repo.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("record expense: %w", err)
	}
	return created, nil
}
