package main

import (
	"s2autosplit/process"
	"s2autosplit/process_windows"
)

var openProcess process.Opener = process_windows.NewWithPID
