package main

import (
	"fmt"
	"os"

	"llamagate/internal/chatcli"
)

func main() {
	if err := chatcli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
