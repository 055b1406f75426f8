package main

import "github.com/erplens/erplens/cmd"

func main() {
	cmd.Execute()
}
