package main

import "github.com/greencart/storefront/internal/cli"

func main() {
	cli.Execute()
}
