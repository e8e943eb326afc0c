package main

import "library-client/cli"

func main() {
	cli.Execute()
}
