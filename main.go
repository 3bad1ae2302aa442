package main

import "github.com/ronibhakta1/opds2-lenny/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
