package main

import "github.com/OpenTraceLab/OpenTraceDeck/cmd/deck/cmd"

func main() {
	cmd.Execute()
}
