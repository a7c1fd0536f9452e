package main

import "github.com/oy3o/bsor/cmd/bsor/cmd"

func main() {
	cmd.Execute()
}
