package main

import "errors"

var (
	errUnknownStore = errors.New("alertd.unknown_store")
	errUnknownRelay = errors.New("alertd.unknown_relay")
	errUnknownScope = errors.New("alertd.unknown_scope")
)
