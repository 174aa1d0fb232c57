package main

import (
	"fmt"
	"os"

	"github.com/manzanit0/mapboxgeo/pkg/logger"
)

func init() {
	logger.InitGlobalSlog("geocode", os.Getenv("LOG_LEVEL"))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
