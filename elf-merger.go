package main

import (
	"github.com/hcyang1106/elf-merger/cmd"
	"github.com/hcyang1106/elf-merger/pkg/utils"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		utils.Fatal(err)
	}
}
