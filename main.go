package main

import "github.com/tbcbank/rekotool/cmd"

func main() {
	cmd.Execute()
}
