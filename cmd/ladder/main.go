package main

import "github.com/chessladder/chessladder/internal/cli"

func main() {
	cli.Execute()
}
