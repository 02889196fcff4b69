// Command cuentica-proxy serves read-only Cuentica API calls through the
// client's response cache and exposes cache control and metrics endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
	"github.com/Sternrassler/cuentica-client/pkg/client"
	"github.com/Sternrassler/cuentica-client/pkg/logging"
)

const shutdownTimeout = 15 * time.Second

// proxyConfig is the merged flag, environment and file configuration.
type proxyConfig struct {
	Addr     string         `mapstructure:"addr"`
	APIToken string         `mapstructure:"api_token"`
	APIURL   string         `mapstructure:"api_url"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	Debug    bool           `mapstructure:"debug"`
	Cache    cache.Config   `mapstructure:"cache"`
	Log      logging.Config `mapstructure:"log"`
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd binds the command's flags to v.
func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cuentica-proxy",
		Short:         "Caching read proxy for the Cuentica API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (YAML)")
	flags.String("addr", ":8080", "listen address")
	flags.String("api-url", client.DefaultAPIURL, "Cuentica API base URL")
	flags.Duration("timeout", client.DefaultTimeout, "timeout per API exchange")
	flags.Bool("debug", false, "log request bodies")
	flags.Bool("cache.enabled", true, "enable the response cache")
	flags.Duration("cache.list-ttl", cache.DefaultListTTL, "TTL for lists and entities")
	flags.Duration("cache.static-ttl", cache.DefaultStaticTTL, "TTL for company and tag data")
	flags.String("log.level", string(logging.LevelInfo), "log level (debug, info, warn, error)")
	flags.Bool("log.pretty", false, "human-readable log output")

	v.BindPFlag("config", flags.Lookup("config"))
	v.BindPFlag("addr", flags.Lookup("addr"))
	v.BindPFlag("api_url", flags.Lookup("api-url"))
	v.BindPFlag("timeout", flags.Lookup("timeout"))
	v.BindPFlag("debug", flags.Lookup("debug"))
	v.BindPFlag("cache.enabled", flags.Lookup("cache.enabled"))
	v.BindPFlag("cache.list_ttl", flags.Lookup("cache.list-ttl"))
	v.BindPFlag("cache.static_ttl", flags.Lookup("cache.static-ttl"))
	v.BindPFlag("log.level", flags.Lookup("log.level"))
	v.BindPFlag("log.pretty", flags.Lookup("log.pretty"))

	return cmd
}

// loadConfig merges the optional config file and CUENTICA_* variables over
// the flag defaults. CUENTICA_API_TOKEN is required.
func loadConfig(v *viper.Viper) (proxyConfig, error) {
	v.SetEnvPrefix("CUENTICA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.BindEnv("api_token")

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return proxyConfig{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg proxyConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return proxyConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.APIToken == "" {
		return proxyConfig{}, &client.ConfigError{
			Message: client.EnvAPIToken + " is not set",
			Err:     client.ErrMissingToken,
		}
	}
	return cfg, nil
}

// clientConfig translates the proxy configuration for the API client.
func (cfg proxyConfig) clientConfig() client.Config {
	c := client.DefaultConfig(cfg.APIToken)
	c.APIURL = cfg.APIURL
	c.Timeout = cfg.Timeout
	c.Debug = cfg.Debug
	cacheCfg := cfg.Cache
	c.Cache = &cacheCfg
	return c
}

func run(ctx context.Context, cfg proxyConfig) error {
	logging.Setup(cfg.Log)
	logger := logging.NewLogger(logging.ComponentProxy)

	clientCfg := cfg.clientConfig()
	clientLogger := logging.NewLogger(logging.ComponentClient)
	clientCfg.Logger = &clientLogger

	api, err := client.New(clientCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid client configuration")
		return err
	}
	defer api.Close()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(api, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Shutdown error")
		}
	}()

	logger.Info().
		Str("addr", cfg.Addr).
		Str("api_url", clientCfg.APIURL).
		Bool("cache", cfg.Cache.Enabled).
		Msg("Starting Cuentica proxy")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("Server failed")
		return err
	}
	logger.Info().Msg("Server stopped")
	return nil
}
