package main

import "restaurantscorer/cmd/cli/command"

func main() {
	command.Execute()
}
