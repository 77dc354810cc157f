package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/onokeee/mindmap/gin"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Run: func(cmd *cobra.Command, args []string) {
		handler, err := gin.New(mindmapStore, authService)
		if err != nil {
			logger.Fatal("could not create server:", err)
		}

		logger.Printf("server started, listening on %s", cfg.HTTP.Addr)
		logger.Fatal(http.ListenAndServe(cfg.HTTP.Addr, handler))
	},
}

func init() {
	RootCmd.AddCommand(ServeCmd)
}
