package main

import "github.com/iksnae/streamchat/cmd"

func main() {
	cmd.Execute()
}
