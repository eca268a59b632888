package main

import "github.com/kozaktomas/securevote/cmd"

func main() {
	cmd.Execute()
}
