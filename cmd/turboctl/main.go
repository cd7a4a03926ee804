// Package main provides turboctl, the operator CLI for the Turbo Ops
// backend. It talks straight to Supabase with the service-role key, so
// it can fix things (like a locked-out admin) that the HTTP API cannot.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
