package main

import "github.com/frahmantamala/employee-portal/cmd"

func main() {
	cmd.Execute()
}
