package main

import "manifest-validator/cmd"

func main() {
	cmd.Execute()
}
