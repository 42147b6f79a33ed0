package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/settlement-desk/internal/address"
	"github.com/rxtech-lab/settlement-desk/internal/api"
	"github.com/rxtech-lab/settlement-desk/internal/config"
	"github.com/rxtech-lab/settlement-desk/internal/datasource"
	"github.com/rxtech-lab/settlement-desk/internal/logger"
	"github.com/rxtech-lab/settlement-desk/internal/submission"
	"github.com/rxtech-lab/settlement-desk/internal/tokens"
	"github.com/rxtech-lab/settlement-desk/internal/trades"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/rxtech-lab/settlement-desk/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// env holds what every command needs once the config is loaded.
type env struct {
	cfg      config.Config
	log      *logger.Logger
	store    *datasource.Store
	location *time.Location
}

// setup loads the config, applies flag overrides and opens the store.
func setup(cmd *cli.Command) (*env, error) {
	cfg, err := config.Read(cmd.String("config"), !cmd.IsSet("config"))
	if err != nil {
		return nil, err
	}

	if v := cmd.String("account"); v != "" {
		cfg.Account.Address = v
	}

	if v := cmd.String("driver"); v != "" {
		cfg.Store.Driver = v
	}

	if v := cmd.String("db"); v != "" {
		cfg.Store.Path = v
	}

	if v := cmd.String("log-level"); v != "" {
		cfg.Log.Level = v
	}

	if v := cmd.String("log-output"); v != "" {
		cfg.Log.Output = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLoggerWithConfig(logger.Config{Level: cfg.Log.Level, OutputPath: cfg.Log.Output})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := datasource.NewStore(cfg.Store.Driver, cfg.Store.Path, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	log.Debug("Configuration loaded",
		zap.String("driver", cfg.Store.Driver),
		zap.String("path", cfg.Store.Path),
		zap.String("account", cfg.Account.Address),
	)

	return &env{cfg: cfg, log: log, store: store, location: location}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("Failed to close store", zap.Error(err))
	}

	_ = e.log.Sync()
}

func (e *env) submitter() *submission.Service {
	return submission.NewService(e.store, e.location, e.log)
}

// balances returns nil when no token endpoint is configured.
func (e *env) balances() tokens.BalanceProvider {
	if e.cfg.Tokens.Endpoint == "" {
		return nil
	}

	client, err := tokens.NewAlchemyClient(tokens.AlchemyConfig{
		Endpoint:   e.cfg.Tokens.Endpoint,
		APIKey:     e.cfg.Tokens.APIKey,
		RetryCount: 2,
	}, e.log)
	if err != nil {
		e.log.Warn("Token balances disabled", zap.Error(err))
		return nil
	}

	return client
}

// output is where commands print, the root command's Writer.
func output(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}

	return os.Stdout
}

func uiAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	model := NewModel(Deps{
		Source:     e.store,
		Submitter:  e.submitter(),
		Balances:   e.balances(),
		Account:    e.cfg.Account.Address,
		FetchLimit: e.cfg.List.FetchLimit,
		PageSize:   e.cfg.List.PageSize,
		Logger:     e.log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run ui: %w", err)
	}

	return nil
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	w := output(cmd)

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	group := strings.ToLower(cmd.String("group"))
	if group != "" && group != api.GroupPending && group != api.GroupOther {
		return fmt.Errorf("unknown group %q", group)
	}

	limit := e.cfg.List.FetchLimit
	if cmd.Bool("all") {
		limit = 0
	}

	records, err := e.store.FetchTrades(ctx, limit)
	if err != nil {
		return err
	}

	groups := trades.Group(records, cmd.String("query"))

	fmt.Fprintln(w, UserHeader(e.cfg.Account.Address, len(records)))
	fmt.Fprintln(w)

	if group == "" || group == api.GroupPending {
		fmt.Fprintln(w, SectionStyle.Render(PendingHeading(len(groups.Pending))))
		if len(groups.Pending) > 0 {
			fmt.Fprintln(w, renderTrades(groups.Pending))
		}
		fmt.Fprintln(w)
	}

	if group == "" || group == api.GroupOther {
		fmt.Fprintln(w, SectionStyle.Render("Other Settlements"))
		if len(groups.Other) > 0 {
			fmt.Fprintln(w, renderTrades(groups.Other))
		} else {
			fmt.Fprintln(w, "No other settlements")
		}
	}

	return nil
}

func renderTrades(records []types.TradeRecord) string {
	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Counterparty", "Sell", "Buy", "Status", "Expires")

	for _, row := range FullTradeRows(records) {
		t.Row(row...)
	}

	return t.String()
}

func createAction(ctx context.Context, cmd *cli.Command) error {
	w := output(cmd)

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	answers := types.WizardAnswers{
		BuyerAddress:       cmd.String("buyer"),
		SellerTokenAddress: cmd.String("sell-token"),
		SellerTokenAmount:  cmd.String("sell-amount"),
		BuyerTokenAddress:  cmd.String("buy-token"),
		BuyerTokenAmount:   cmd.String("buy-amount"),
		DatePeriod:         cmd.String("date"),
		TimePeriod:         cmd.String("time"),
	}

	trade, err := e.submitter().Submit(ctx, answers, e.cfg.Account.Address)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, SuccessNotice)
	fmt.Fprintf(w, "ID: %s\nCounterparty: %s\nExpires: %s\n",
		trade.ID, address.Format(trade.Counterparty), trade.ExpiresAt.In(e.location).Format("2006-01-02 15:04 MST"))

	return nil
}

func seedAction(ctx context.Context, cmd *cli.Command) error {
	w := output(cmd)

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	seed, err := datasource.LoadSeedFile(cmd.String("file"))
	if err != nil {
		return err
	}

	if err := e.store.Seed(ctx, seed); err != nil {
		return err
	}

	fmt.Fprintf(w, "Seeded %d trades into %s\n", len(seed), e.cfg.Store.Path)

	return nil
}

func statusAction(status types.TradeStatus) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		w := output(cmd)

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id := cmd.String("id")
		if err := e.store.UpdateStatus(ctx, id, status); err != nil {
			return err
		}

		fmt.Fprintf(w, "Trade %s is now %s\n", id, status)

		return nil
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	w := output(cmd)

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	addr := e.cfg.Server.Addr
	if v := cmd.String("addr"); v != "" {
		addr = v
	}

	server := api.NewServer(api.Options{
		Repository: e.store,
		Submitter:  e.submitter(),
		Balances:   e.balances(),
		Account:    e.cfg.Account.Address,
		FetchLimit: e.cfg.List.FetchLimit,
		PageSize:   e.cfg.List.PageSize,
		Logger:     e.log,
	})

	if err := server.Start(addr); err != nil {
		return err
	}

	fmt.Fprintf(w, "Listening on %s\n", server.Address())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Stop(shutdownCtx)
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	w := output(cmd)

	schema, err := config.Schema()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, schema)

	return nil
}

// initConfigAction writes settle.schema.json and, unless one exists, a
// sample settle.yaml pointing at it.
func initConfigAction(_ context.Context, cmd *cli.Command) error {
	w := output(cmd)

	dir := cmd.String("dir")

	schema, err := config.Schema()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaName := "settle.schema.json"
	if err := os.WriteFile(filepath.Join(dir, schemaName), []byte(schema), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	samplePath := filepath.Join(dir, "settle.yaml")
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(config.Default())
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
		if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}

		fmt.Fprintf(w, "Sample config written to %s\n", samplePath)
	}

	fmt.Fprintf(w, "Schema written to %s\n", filepath.Join(dir, schemaName))

	return nil
}

func versionAction(_ context.Context, cmd *cli.Command) error {
	w := output(cmd)

	fmt.Fprintln(w, version.GetVersion())

	return nil
}
