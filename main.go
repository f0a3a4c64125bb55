package main

import "github.com/brk3/habits/cmd"

func main() {
	cmd.Execute()
}
