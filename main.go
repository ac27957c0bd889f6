package main

import "github.com/codegenlab/schemagen/cmd"

func main() {
	cmd.Execute()
}
