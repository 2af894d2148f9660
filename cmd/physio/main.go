package main

import (
	"fmt"
	"os"
)

func main() {
	err := rootCmd.Execute()
	closeResources()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
