package main

import "github.com/mouse-blink/litrep/cmd"

func main() {
	cmd.Execute()
}
