// Package main provides the entry point for the simplespeak CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/simplespeak/simplespeak/internal/audio"
	"github.com/simplespeak/simplespeak/internal/cache"
	"github.com/simplespeak/simplespeak/internal/utils"
	"github.com/simplespeak/simplespeak/pkg/tts"
	"github.com/simplespeak/simplespeak/pkg/tts/engines"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile  string
	debug       bool
	engineName  string
	cacheDir    string
	voiceConfig string
	playback    string

	rootCmd = &cobra.Command{
		Use:   "simplespeak",
		Short: "Speak typed text out loud, with style!",
		Long: paragraph(
			fmt.Sprintf("\nType a line, %s. Generated audio is kept in a timestamped cache for replay.", keyword("hear it spoken")),
		),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          execute,
	}
)

func execute(*cobra.Command, []string) error {
	tts.InitializeLogging(viper.GetBool("debug"))

	// Environment first, then config file and flags on top.
	cfg, err := env.ParseAs[tts.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	cfg, err = tts.LoadConfigFromViper(cfg)
	if err != nil {
		return err
	}

	store := cache.NewStore(utils.ExpandPath(cfg.CacheDir))
	if err := store.EnsureDir(); err != nil {
		return err
	}

	player, err := audio.New(cfg.Playback)
	if err != nil {
		// Generation still works without a playback device; files land in
		// the cache either way.
		log.Warn("Audio playback is unavailable", "err", err)
		player = nil
	}

	engine, err := engines.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, paragraph(fmt.Sprintf(
			"Could not start the %s engine. Is the runtime installed?",
			keyword(cfg.Engine))))
		return fmt.Errorf("starting %s engine: %w", cfg.Engine, err)
	}
	handler := tts.NewHandler(engine, cfg)
	if handler.State() == tts.StateFailed {
		return fmt.Errorf("starting %s engine: %w", cfg.Engine, handler.InitErr())
	}

	vc := tts.LoadVoiceConfig(utils.ExpandPath(cfg.VoiceConfigPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runLoop(ctx, os.Stdin, os.Stdout, loopDeps{
		handler:     handler,
		store:       store,
		player:      player,
		voice:       vc,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	})
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&engineName, "engine", "e", "", "synthesis engine (outetts/mock)")
	rootCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for generated audio files")
	rootCmd.Flags().StringVar(&voiceConfig, "voice-config", "", "JSON voice configuration file")
	rootCmd.Flags().StringVar(&playback, "playback", "", "playback backend (auto/oto/command)")

	// Config bindings
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("cache_dir", rootCmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("voice_config", rootCmd.Flags().Lookup("voice-config"))
	_ = viper.BindPFlag("playback", rootCmd.Flags().Lookup("playback"))

	viper.SetDefault("debug", false)
	tts.SetDefaults()

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "simplespeak")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "simplespeak")}, dirs...)
	}

	if c := os.Getenv("SIMPLESPEAK_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("simplespeak")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("simplespeak")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "simplespeak.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
