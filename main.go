package main

import "github.com/gaurav-prasanna/llmsdocs/cmd"

func main() {
	cmd.Execute()
}
