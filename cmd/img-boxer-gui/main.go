package main

import "github.com/A-Ravioli/img-boxer/ui"

func main() {
	ui.Run()
}
