package main

import "github.com/shadetool/shade/internal/cli"

func main() {
	cli.Execute()
}
