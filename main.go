package main

import "autosig/cmd"

func main() {
	cmd.Execute()
}
