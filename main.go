package main

import "github.com/icco/sheetplay/cmd"

func main() {
	cmd.Execute()
}
