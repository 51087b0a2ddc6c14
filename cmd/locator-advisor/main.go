package main

import "github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/cli"

func main() {
	cli.Execute()
}
