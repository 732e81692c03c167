package main

import (
	"github.com/yatishgautam00/spy-game-local/internal/cli"
)

func main() {
	cli.Execute()
}
