package main

import (
	"os"

	"github.com/PratikSonavane14/SFrame/cmd/configure/internal"
)

func main() {
	os.Exit(internal.Execute())
}
