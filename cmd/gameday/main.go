package main

import "github.com/pfrederiksen/gameday/internal/cli"

func main() {
	cli.Execute()
}
