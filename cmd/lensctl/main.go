package main

import (
	"os"

	"github.com/listinglens/dashboard/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
