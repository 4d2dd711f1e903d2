package main

import "github.com/cpyproject/cpybuild/cmd"

func main() {
	cmd.Execute()
}
