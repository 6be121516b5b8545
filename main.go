package main

import "ooz/cmd"

func main() {
	cmd.Execute()
}
