package main

import "github.com/zeitwerk/zeitwerk/cmd"

func main() {
	cmd.Execute()
}
