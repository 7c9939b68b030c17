package main

import "github.com/ironsheep/pixel-regions/cmd/pixel-regions/cmd"

func main() {
	cmd.Execute()
}
