package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/onokeee/mindmap"
	"github.com/onokeee/mindmap/auth"
	"github.com/onokeee/mindmap/bolt"
	"github.com/onokeee/mindmap/log"
	"github.com/onokeee/mindmap/sqlite"
)

var (
	// flags
	env string

	// logger
	logger log.Logger

	// configuration
	cfg Configuration

	// stores
	storeCloser  io.Closer
	userStore    mindmap.UserStore
	mindmapStore mindmap.MindmapStore

	// services
	authService *auth.Service
)

type Configuration struct {
	Auth struct {
		Key string `toml:"key"`
	} `toml:"auth"`
	Store struct {
		Backend string `toml:"backend"`
		SQLite  string `toml:"sqlite"`
		Bolt    string `toml:"bolt"`
	} `toml:"store"`
	HTTP struct {
		Addr string `toml:"addr"`
	} `toml:"http"`
	Bootstrap struct {
		Username string `toml:"username"`
		Password string `toml:"password"`
	} `toml:"bootstrap"`
}

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "")
}

var RootCmd = cobra.Command{
	Use:   "mindmap",
	Short: "Multi-user mindmap storage server",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration
		cfgData, err := os.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			fmt.Println("error reading configuration:", err)
			os.Exit(1)
		}

		err = toml.Unmarshal(cfgData, &cfg)
		if err != nil {
			fmt.Println("error unmarshalling configuration:", err)
			os.Exit(1)
		}

		// Create logger
		logger = log.New(env)

		// Create stores
		switch cfg.Store.Backend {
		case "bolt":
			driver := &bolt.Driver{}
			if err := driver.Open(cfg.Store.Bolt); err != nil {
				logger.Fatal("could not open bolt store:", err)
			}
			storeCloser = driver
			userStore = &bolt.UserStore{Driver: driver}
			mindmapStore = &bolt.MindmapStore{Driver: driver}
		case "sqlite", "":
			driver, err := sqlite.NewDriver(cfg.Store.SQLite)
			if err != nil {
				logger.Fatal("could not open sqlite store:", err)
			}
			storeCloser = driver
			userStore = &sqlite.UserStore{Driver: driver}
			mindmapStore = &sqlite.MindmapStore{Driver: driver}
		default:
			logger.Fatalf("unknown store backend %q", cfg.Store.Backend)
		}

		// Create services
		authService = auth.NewService(userStore, cfg.Auth.Key)

		// Make sure the default account exists
		if cfg.Bootstrap.Username != "" {
			if err := authService.Bootstrap(cfg.Bootstrap.Username, cfg.Bootstrap.Password); err != nil {
				logger.Fatal("could not bootstrap default user:", err)
			}
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if storeCloser != nil {
			storeCloser.Close()
		}
	},
}
