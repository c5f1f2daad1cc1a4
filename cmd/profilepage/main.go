package main

import "github.com/nfrund/profilepage/cmd/profilepage/cmd"

func main() {
	cmd.Execute()
}
