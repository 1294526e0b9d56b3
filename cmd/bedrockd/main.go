package main

import (
	"log"

	"github.com/NVIDIA/bedrock-probe/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
