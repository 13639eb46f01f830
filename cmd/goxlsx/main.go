package main

import "github.com/speedata/goxlsx/v2/internal/cli"

func main() {
	cli.Execute()
}
