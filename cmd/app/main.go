package main

import (
	"os"
	_ "time/tzdata"

	"github.com/DanielMat97/BackendExtorApp/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
