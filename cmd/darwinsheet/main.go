package main

import "github.com/umeldt/darwinsheet/cmd/darwinsheet/cmd"

func main() {
	cmd.Execute()
}
