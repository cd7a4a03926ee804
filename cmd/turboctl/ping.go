// Ping command for the turboctl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to Supabase",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		start := time.Now()
		if err := client.Ping(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "ping:", err)
			os.Exit(exitSysError)
		}
		fmt.Printf("ok (%s)\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}
