package main

import "mediabar/cmd"

func main() {
	cmd.Execute()
}
