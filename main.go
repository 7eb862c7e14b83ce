package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/Rorical/flightai/cmd"
)

func main() {
	cmd.Execute()
}
