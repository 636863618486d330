package main

import (
	"os"

	"github.com/SAP-F-2025/behavioral-assessment/internal/utils"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		utils.NewDefaultLogger().Error("Command failed", "error", err)
		os.Exit(1)
	}
}
