package main

import "wellness-analytics/internal/cli"

func main() {
	cli.Execute()
}
