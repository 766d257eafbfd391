package main

import "filmwatch/cmd"

func main() {
	cmd.Execute()
}
