package main

import (
	"github.com/apkgrab/apkgrab/pkg/cmd"
)

func main() {
	cmd.Execute()
}
