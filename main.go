package main

import (
	"os"

	"github.com/Johannes-Berggren/publish/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
