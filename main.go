package main

import "eplpulse/cmd"

func main() {
	cmd.Execute()
}
