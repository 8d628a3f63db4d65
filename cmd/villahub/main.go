package main

import "villahub/cmd/villahub/command"

func main() {
	command.Execute()
}
