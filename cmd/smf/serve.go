package main

import (
	"fmt"

	"github.com/Garik-/smf/pkg/api"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the decode API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !debugFlag {
			gin.SetMode(gin.ReleaseMode)
		}
		return api.NewServer(logger).Run(fmt.Sprintf(":%d", portFlag))
	},
}

func init() {
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 8080, "Server port")
}
