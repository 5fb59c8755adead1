package main

import "github.com/MariamAbbas03/Project435/cmd/shopctl/commands"

func main() {
	commands.Execute()
}
