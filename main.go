package main

import "github.com/jsphweid/chordbloom/cmd"

func main() {
	cmd.Execute()
}
