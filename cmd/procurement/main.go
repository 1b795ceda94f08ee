package main

import "procurement/cmd/procurement/commands"

func main() {
	commands.Execute()
}
