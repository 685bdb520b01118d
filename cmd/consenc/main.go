package main

import "consenc/cmd/consenc/cmd"

func main() {
	cmd.Execute()
}
