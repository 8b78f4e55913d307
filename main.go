package main

import "github.com/timvw/dir-diff/cmd"

func main() {
	cmd.Execute()
}
