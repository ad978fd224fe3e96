package main

import "github.com/Another0Noob/reading-challenge/cmd"

func main() {
	cmd.Execute()
}
