package main

import "github.com/taigaclone/pagesmoke/cmd"

func main() {
	cmd.Execute()
}
