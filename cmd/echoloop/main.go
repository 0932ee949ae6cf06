package main

import "github.com/aalvaropc/echoloop/internal/cli"

func main() {
	cli.Execute()
}
