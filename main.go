package main

import "github.com/brk3/streaks/cmd"

func main() {
	cmd.Execute()
}
