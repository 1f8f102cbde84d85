package main

import (
	"os"

	"github.com/pottypal/potty-timer/timerservice"
)

func main() {
	if err := timerservice.Run(); err != nil {
		os.Exit(1)
	}
}
