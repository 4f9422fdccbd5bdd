package main

import "github.com/zjrosen/stax/cmd"

func main() {
	cmd.Execute()
}
