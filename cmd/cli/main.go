package main

import (
	"fmt"
	"os"

	"github.com/crucial707/authgate/cmd/cli/auth"
	"github.com/crucial707/authgate/cmd/cli/root"
	"github.com/crucial707/authgate/cmd/cli/whoami"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	whoami.InitWhoami(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
