package main

import (
	"io"
	"os"

	"blogstore/service"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := service.NewRootCommand(cliVersion)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return service.Execute(root, args)
}
