package main

import "github.com/lukehollenback/fcsapi/cli"

func main() {
	cli.Execute()
}
