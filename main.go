package main

import "collection-prep/cmd"

func main() {
	cmd.Execute()
}
