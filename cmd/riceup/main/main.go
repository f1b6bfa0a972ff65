package main

import (
	"fmt"
	"os"

	"github.com/riceup/riceup/cmd/riceup"
	"github.com/riceup/riceup/pkg/report/styles"
)

func main() {
	rootCmd := riceup.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.Get("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
