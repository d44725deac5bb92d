package main

import (
	"s2autosplit/process"
	"s2autosplit/process_linux"
)

var openProcess process.Opener = process_linux.NewWithPID
