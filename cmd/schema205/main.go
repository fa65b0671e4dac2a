package main

import "schema205/internal/cli"

func main() {
	cli.Execute()
}
