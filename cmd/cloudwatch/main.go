package main

import (
	"log"

	"github.com/NVIDIA/bedrock-probe/pkg/metricstore"
)

func main() {
	if err := metricstore.Serve(); err != nil {
		log.Fatal(err)
	}
}
