package main

import (
	"github.com/santiago-labs/apphost/cmd"
)

func main() {
	cmd.Execute()
}
