// Package main provides the CLI entrypoint for dalgona.
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/verte-zerg/dalgona/internal/config"
	"github.com/verte-zerg/dalgona/internal/feedback"
	"github.com/verte-zerg/dalgona/internal/game"
	"github.com/verte-zerg/dalgona/internal/logging"
	"github.com/verte-zerg/dalgona/internal/model"
	"github.com/verte-zerg/dalgona/internal/rankui"
	"github.com/verte-zerg/dalgona/internal/ranking"
	"github.com/verte-zerg/dalgona/internal/sound"
	"github.com/verte-zerg/dalgona/internal/store"
	"github.com/verte-zerg/dalgona/internal/tui"
)

const (
	defaultLang            = "en"
	defaultFeedbackTimeout = 10
	defaultCanvasCols      = 80
	defaultCanvasRows      = 40
	defaultLogLevel        = "info"
	storeTimeout           = 5 * time.Second
)

var (
	playLang            string
	playSound           bool
	playFeedback        bool
	playFeedbackModel   string
	playFeedbackTimeout int
	playAPIKeyEnv       string
	playCanvasCols      int
	playCanvasRows      int
	playLogLevel        string
	playLogFile         string

	rankingFormat string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dalgona",
		Short:         "Trace the shape before the candy cracks",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	addGameFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newRankingCmd())
	rootCmd.AddCommand(newTipCmd())

	return rootCmd
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playLang, "lang", defaultLang, "message language (en, ko)")
	cmd.Flags().BoolVar(&playSound, "sound", false, "play cue tones")
	cmd.Flags().BoolVar(&playFeedback, "feedback", true, "ask Gemini for outcome and intro messages")
	cmd.Flags().StringVar(&playFeedbackModel, "model", feedback.DefaultModel, "Gemini model name")
	cmd.Flags().IntVar(&playFeedbackTimeout, "timeout", defaultFeedbackTimeout, "feedback request timeout in seconds")
	cmd.Flags().StringVar(&playAPIKeyEnv, "api-key-env", config.DefaultAPIKeyEnv, "environment variable holding the API key")
	cmd.Flags().IntVar(&playCanvasCols, "canvas-cols", defaultCanvasCols, "canvas width in terminal cells")
	cmd.Flags().IntVar(&playCanvasRows, "canvas-rows", defaultCanvasRows, "canvas height in terminal cells")
	cmd.Flags().StringVar(&playLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&playLogFile, "log-file", "", "log file path (default: XDG state dir)")
}

// loadConfig merges .env files, the TOML config and flags, in increasing priority.
func loadConfig(cmd *cobra.Command) (model.Config, error) {
	if err := config.LoadEnv(".env", config.DefaultEnvPath()); err != nil {
		return model.Config{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &playLang, fileCfg.Game.Lang)
	applyBoolConfig(cmd, "sound", &playSound, fileCfg.Game.Sound)
	applyBoolConfig(cmd, "feedback", &playFeedback, fileCfg.Feedback.Enabled)
	applyStringConfig(cmd, "model", &playFeedbackModel, fileCfg.Feedback.Model)
	applyIntConfig(cmd, "timeout", &playFeedbackTimeout, fileCfg.Feedback.Timeout)
	applyStringConfig(cmd, "api-key-env", &playAPIKeyEnv, fileCfg.Feedback.APIKeyEnv)
	applyIntConfig(cmd, "canvas-cols", &playCanvasCols, fileCfg.UI.CanvasCols)
	applyIntConfig(cmd, "canvas-rows", &playCanvasRows, fileCfg.UI.CanvasRows)
	applyStringConfig(cmd, "log-level", &playLogLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &playLogFile, fileCfg.Log.File)

	cfg := model.Config{
		Lang:            strings.ToLower(strings.TrimSpace(playLang)),
		Sound:           playSound,
		FeedbackEnabled: playFeedback,
		FeedbackModel:   playFeedbackModel,
		FeedbackTimeout: playFeedbackTimeout,
		APIKeyEnv:       playAPIKeyEnv,
		CanvasCols:      playCanvasCols,
		CanvasRows:      playCanvasRows,
		LogLevel:        playLogLevel,
		LogFile:         playLogFile,
	}
	if cfg.LogFile == "" {
		cfg.LogFile = config.DefaultLogPath()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	provider := newProvider(ctx, cfg, logger)

	board, st := openBoard(ctx, logger)
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Warn("failed to close db", zap.Error(cerr))
			}
		}()
	}

	loopCfg := game.LoopConfig{
		FeedbackTimeout: time.Duration(cfg.FeedbackTimeout) * time.Second,
		Feedback:        provider,
		Logger:          logger,
	}
	if st != nil {
		loopCfg.Saver = st
	}
	if cfg.Sound {
		player := sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			logger.Warn("audio unavailable, sound disabled", zap.Error(err))
		} else {
			defer player.Cleanup()
			loopCfg.Cues = player
		}
	}
	loop := game.NewLoop(game.NewSession(board), loopCfg)

	ui := tui.NewModel(loop, provider, tui.Options{
		CanvasCols:     cfg.CanvasCols,
		CanvasRows:     cfg.CanvasRows,
		IntroTimeout:   loopCfg.FeedbackTimeout,
		SavingDisabled: st == nil,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		program := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gctx))
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// newProvider returns the Gemini provider when enabled and configured,
// falling back to static messages otherwise.
func newProvider(ctx context.Context, cfg model.Config, logger *zap.Logger) feedback.Provider {
	lang := feedback.Lang(cfg.Lang)
	static := feedback.Static{Lang: lang}
	if !cfg.FeedbackEnabled {
		return static
	}
	key := config.APIKey(cfg.APIKeyEnv)
	if key == "" {
		logger.Info("no API key, using fallback messages", zap.String("env", cfg.APIKeyEnv))
		return static
	}
	provider, err := feedback.NewGemini(ctx, feedback.GeminiConfig{
		APIKey: key,
		Model:  cfg.FeedbackModel,
		Lang:   lang,
		Logger: logger,
	})
	if err != nil {
		logger.Warn("gemini unavailable, using fallback messages", zap.Error(err))
		return static
	}
	return provider
}

// openBoard loads the stored leaderboard. On failure the game runs with an
// empty board and no store.
func openBoard(ctx context.Context, logger *zap.Logger) (ranking.Board, *store.Store) {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		logger.Error("failed to open leaderboard store, saving disabled", zap.String("path", path), zap.Error(err))
		return nil, nil
	}
	loadCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	board, err := st.Load(loadCtx)
	if err != nil {
		logger.Error("failed to load leaderboard, saving disabled", zap.Error(err))
		if cerr := st.Close(); cerr != nil {
			// Best-effort close on load failure.
			_ = cerr
		}
		return nil, nil
	}
	logger.Info("leaderboard loaded", zap.Int("records", len(board)))
	return board, st
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newRankingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the hall of fame",
		Args:  cobra.NoArgs,
		RunE:  runRankingCmd,
	}
	cmd.Flags().StringVar(&rankingFormat, "format", string(ranking.FormatTable), "output format (table, json, yaml)")
	return cmd
}

func runRankingCmd(cmd *cobra.Command, _ []string) error {
	format, err := ranking.ParseFormat(rankingFormat)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	ctx, cancel := context.WithTimeout(cmd.Context(), storeTimeout)
	defer cancel()
	board, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rankings: %w", err)
	}

	if format == ranking.FormatTable && isTerminal(os.Stdout) && !cmd.Flags().Changed("format") {
		program := tea.NewProgram(rankui.NewModel(board), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run ranking TUI: %w", err)
		}
		return nil
	}
	if err := ranking.Write(cmd.OutOrStdout(), board, format); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newTipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Print one intro tip",
		Args:  cobra.NoArgs,
		RunE:  runTipCmd,
	}
	addGameFlags(cmd)
	return cmd
}

func runTipCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.FeedbackTimeout)*time.Second)
	defer cancel()
	tip := newProvider(ctx, cfg, logger).IntroMessage(ctx)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), tip); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# dalgona configuration
# Uncomment a value to enable it. CLI flags override config values.
# The API key is read from the environment or a .env file, never from here.

[game]
# sound = false              # Play cue tones
# lang = %q                 # Message language (en, ko)

[feedback]
# enabled = true             # Ask Gemini for outcome and intro messages
# model = %q  # Gemini model name
# timeout = %d               # Request timeout in seconds
# api-key-env = %q  # Environment variable holding the API key

[ui]
# canvas-cols = %d           # Canvas width in terminal cells
# canvas-rows = %d           # Canvas height in terminal cells

[log]
# level = %q              # debug, info, warn, error
# file = "%s"
`,
		defaultLang,
		feedback.DefaultModel,
		defaultFeedbackTimeout,
		config.DefaultAPIKeyEnv,
		defaultCanvasCols,
		defaultCanvasRows,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := feedback.ParseLang(cfg.Lang); err != nil || cfg.Lang == "" {
		return fmt.Errorf("--lang must be en or ko")
	}
	if cfg.FeedbackTimeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if cfg.CanvasCols <= 0 || cfg.CanvasRows <= 0 {
		return fmt.Errorf("--canvas-cols and --canvas-rows must be > 0")
	}
	finest, _ := game.LevelConfig(game.MaxLevel)
	if cellReach(cfg.CanvasCols, cfg.CanvasRows) >= finest.Precision {
		return fmt.Errorf("canvas %dx%d is too coarse to trace level %d outlines",
			cfg.CanvasCols, cfg.CanvasRows, game.MaxLevel)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

// cellReach is the farthest a logical point can lie from the center of the
// cell it falls in.
func cellReach(cols, rows int) float64 {
	return math.Hypot(model.CanvasSize/float64(cols)/2, model.CanvasSize/float64(rows)/2)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
