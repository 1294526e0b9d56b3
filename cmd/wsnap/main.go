package main

import (
	"github.com/NVIDIA/bedrock-probe/pkg/cli"
)

func main() {
	cli.Execute()
}
