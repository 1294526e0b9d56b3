package main

import (
	"log"

	"github.com/NVIDIA/bedrock-probe/pkg/gateway"
)

func main() {
	if err := gateway.Serve(); err != nil {
		log.Fatal(err)
	}
}
