package main

import "factory-checker/internal/cli"

func main() {
	cli.Execute()
}
