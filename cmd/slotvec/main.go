package main

import (
	"github.com/pavanmanishd/slotvec/internal/command/root"
)

func main() {
	root.NewRootCommand().Execute()
}
