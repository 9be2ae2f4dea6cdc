package main

import "github.com/mchmarny/ssctl/pkg/cli"

func main() {
	cli.Execute()
}
