package main

//go:generate echo "Generating SQLC files..."
//go:generate bash -c "export PATH=$$PATH:~/go/bin && sqlc generate -f ../sqlc.yaml"
//go:generate echo "SQLC files generated"

// This file contains go:generate directives that regenerate the SQLC query
// code for this project. To regenerate, run:
//
// go generate ./...
//
// from the project root directory.
